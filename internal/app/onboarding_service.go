package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"onboardhub/internal/ai"
	"onboardhub/internal/knowledge"
	"onboardhub/internal/model"
	"onboardhub/internal/planparse"
	"onboardhub/internal/repository"
)

const planSystemPrompt = "You are an AI Employee Onboarding Assistant specialized in creating personalized onboarding plans. Create comprehensive, structured onboarding plans that help new employees integrate smoothly into the company."

const (
	roleContextResults    = 10
	generalContextResults = 5
)

type OnboardingService struct {
	employeeRepo *repository.EmployeeRepository
	planRepo     *repository.PlanRepository
	progressRepo *repository.ProgressRepository
	store        *knowledge.Store
	llmClient    *ai.OpenAICompatibleClient
	chatConfig   ai.ChatConfig
	log          *zap.SugaredLogger
}

func NewOnboardingService(
	employeeRepo *repository.EmployeeRepository,
	planRepo *repository.PlanRepository,
	progressRepo *repository.ProgressRepository,
	store *knowledge.Store,
	llmClient *ai.OpenAICompatibleClient,
	chatConfig ai.ChatConfig,
	log *zap.SugaredLogger,
) *OnboardingService {
	return &OnboardingService{
		employeeRepo: employeeRepo,
		planRepo:     planRepo,
		progressRepo: progressRepo,
		store:        store,
		llmClient:    llmClient,
		chatConfig:   chatConfig,
		log:          log,
	}
}

type PlanResult struct {
	PlanID       uint                      `json:"plan_id"`
	Plan         planparse.Plan            `json:"plan"`
	Checklist    []planparse.ChecklistItem `json:"checklist_items"`
	FullPlanText string                    `json:"full_plan_text,omitempty"`
	CreatedAt    string                    `json:"created_at,omitempty"`
}

// GeneratePlan asks the LLM for a personalized plan grounded in retrieved
// policy context, parses it into phases and tasks, persists the plan with
// its checklist snapshot and seeds the progress ledger. Each generation
// appends a fresh set of ledger rows; checklist ids restart at task_1 and
// completion state from earlier generations is not carried forward.
func (s *OnboardingService) GeneratePlan(ctx context.Context, employeeID string) (*PlanResult, error) {
	employee, err := s.employeeRepo.GetByEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	roleQuery := fmt.Sprintf("onboarding process for %s in %s",
		fallback(employee.Role, "employee"), fallback(employee.Department, "company"))
	roleResults, err := s.store.Query(ctx, roleQuery, roleContextResults)
	if err != nil {
		return nil, err
	}
	generalResults, err := s.store.Query(ctx, "employee onboarding checklist tasks", generalContextResults)
	if err != nil {
		return nil, err
	}

	contextBlock := buildContextBlock(append(roleResults, generalResults...))
	if contextBlock == "" {
		contextBlock = "General onboarding best practices."
	}

	startDate := "N/A"
	if employee.StartDate != nil {
		startDate = employee.StartDate.Format("2006-01-02")
	}
	userPrompt := fmt.Sprintf(`Create a personalized onboarding plan for a new employee with the following information:

Employee Details:
- Name: %s
- Role: %s
- Department: %s
- Start Date: %s

Relevant Context from Company Documents:
%s

Please create a comprehensive onboarding plan that includes:
1. Week-by-week breakdown of activities
2. Specific tasks and milestones
3. Required training sessions
4. Key people to meet
5. Resources and documentation to review
6. Department-specific requirements

Format the response as a structured plan with clear phases (Week 1, Week 2, etc.) and actionable tasks.`,
		employee.Name, fallback(employee.Role, "N/A"), fallback(employee.Department, "N/A"), startDate, contextBlock)

	messages := []ai.ChatMessage{
		{Role: "system", Content: planSystemPrompt},
		{Role: "user", Content: userPrompt},
	}
	planText, err := s.llmClient.Complete(ctx, s.chatConfig, messages)
	if err != nil {
		return nil, err
	}

	plan := planparse.Parse(planText)
	checklist := planparse.BuildChecklist(plan)

	planRow := &model.OnboardingPlan{EmployeeID: employeeID}
	if err := planRow.SetPlan(plan); err != nil {
		return nil, err
	}
	if err := planRow.SetChecklist(checklist); err != nil {
		return nil, err
	}
	if err := s.planRepo.Create(planRow); err != nil {
		return nil, err
	}

	for _, item := range checklist {
		task := &model.ProgressTask{
			EmployeeID: employeeID,
			TaskID:     item.ID,
			TaskName:   item.Task,
			Status:     model.TaskStatusPending,
		}
		if err := s.progressRepo.Create(task); err != nil {
			return nil, fmt.Errorf("seed progress ledger failed: %w", err)
		}
	}

	s.log.Infow("onboarding plan generated",
		"employee_id", employeeID, "plan_id", planRow.ID,
		"phases", len(plan.Phases), "tasks", len(checklist))

	return &PlanResult{
		PlanID:       planRow.ID,
		Plan:         plan,
		Checklist:    checklist,
		FullPlanText: planText,
	}, nil
}

// GetLatestPlan returns the newest stored plan for the employee.
func (s *OnboardingService) GetLatestPlan(employeeID string) (*PlanResult, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, ErrInvalidInput
	}
	row, err := s.planRepo.GetLatestByEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrPlanNotFound
	}

	plan, err := row.Plan()
	if err != nil {
		return nil, err
	}
	checklist, err := row.Checklist()
	if err != nil {
		return nil, err
	}
	return &PlanResult{
		PlanID:    row.ID,
		Plan:      plan,
		Checklist: checklist,
		CreatedAt: row.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// GetChecklist returns the latest checklist, generating a plan on demand
// for employees that do not have one yet.
func (s *OnboardingService) GetChecklist(ctx context.Context, employeeID string) ([]planparse.ChecklistItem, error) {
	result, err := s.GetLatestPlan(employeeID)
	if err == nil {
		return result.Checklist, nil
	}
	if err != ErrPlanNotFound {
		return nil, err
	}

	generated, err := s.GeneratePlan(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return generated.Checklist, nil
}

func (s *OnboardingService) GetProgress(employeeID string) ([]model.ProgressTask, error) {
	if strings.TrimSpace(employeeID) == "" {
		return nil, ErrInvalidInput
	}
	employee, err := s.employeeRepo.GetByEmployeeID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return s.progressRepo.ListByEmployeeID(employeeID)
}

func (s *OnboardingService) UpdateTaskStatus(employeeID, taskID, status, notes string) error {
	if strings.TrimSpace(employeeID) == "" || strings.TrimSpace(taskID) == "" {
		return ErrInvalidInput
	}
	if status != model.TaskStatusPending && status != model.TaskStatusCompleted {
		return ErrInvalidInput
	}
	if err := s.progressRepo.UpdateStatus(employeeID, taskID, status, notes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

func fallback(value, alt string) string {
	if strings.TrimSpace(value) == "" {
		return alt
	}
	return value
}
