package app

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"onboardhub/internal/ai"
	"onboardhub/internal/knowledge"
	"onboardhub/internal/repository"
)

const qaSystemPrompt = "You are an AI Employee Onboarding Assistant. Your role is to help new employees understand company policies, procedures, and their onboarding process. Always provide accurate, helpful answers based on the provided context. If the context doesn't contain enough information, say so clearly."

// AnswerCache stores serialized answers keyed by question; nil disables
// caching.
type AnswerCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, payload string) error
}

type Citation struct {
	Source    string  `json:"source"`
	Page      int     `json:"page"`
	Relevance float64 `json:"relevance_score"`
}

type Answer struct {
	Answer      string     `json:"answer"`
	Citations   []Citation `json:"citations"`
	ContextUsed bool       `json:"context_used"`
}

type QAService struct {
	store        *knowledge.Store
	employeeRepo *repository.EmployeeRepository
	llmClient    *ai.OpenAICompatibleClient
	chatConfig   ai.ChatConfig
	cache        AnswerCache
	topK         int
	log          *zap.SugaredLogger
}

func NewQAService(
	store *knowledge.Store,
	employeeRepo *repository.EmployeeRepository,
	llmClient *ai.OpenAICompatibleClient,
	chatConfig ai.ChatConfig,
	cache AnswerCache,
	topK int,
	log *zap.SugaredLogger,
) *QAService {
	if topK <= 0 {
		topK = 5
	}
	return &QAService{
		store:        store,
		employeeRepo: employeeRepo,
		llmClient:    llmClient,
		chatConfig:   chatConfig,
		cache:        cache,
		topK:         topK,
		log:          log,
	}
}

// Ask answers a policy question from the knowledge base with citations. An
// empty index is not an error: the model is told no context was found and
// citations come back empty.
func (s *QAService) Ask(ctx context.Context, question, employeeID string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrInvalidInput
	}

	cacheKey := answerCacheKey(question, employeeID)
	if s.cache != nil {
		if payload, hit, err := s.cache.Get(ctx, cacheKey); err == nil && hit {
			var cached Answer
			if err := json.Unmarshal([]byte(payload), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	employeeInfo := ""
	if employeeID != "" {
		employee, err := s.employeeRepo.GetByEmployeeID(employeeID)
		if err != nil {
			return nil, err
		}
		if employee == nil {
			return nil, ErrEmployeeNotFound
		}
		employeeInfo = fmt.Sprintf("\nEmployee Information:\n- Name: %s\n- Role: %s\n- Department: %s\n",
			employee.Name, orNA(employee.Role), orNA(employee.Department))
	}

	results, err := s.store.Query(ctx, question, s.topK)
	if err != nil {
		return nil, err
	}

	contextBlock := buildContextBlock(results)
	if contextBlock == "" {
		contextBlock = "No relevant context found in the knowledge base."
	}

	userPrompt := fmt.Sprintf(`Based on the following company documents and information, please answer this question: %s
%s
Relevant Context from Company Documents:
%s

Please provide a clear, comprehensive answer. At the end, list the sources you used (document names and page numbers).`,
		question, employeeInfo, contextBlock)

	messages := []ai.ChatMessage{
		{Role: "system", Content: qaSystemPrompt},
		{Role: "user", Content: userPrompt},
	}
	answerText, err := s.llmClient.Complete(ctx, s.chatConfig, messages)
	if err != nil {
		return nil, err
	}

	citations := make([]Citation, len(results))
	for i, r := range results {
		citations[i] = Citation{
			Source:    r.Source,
			Page:      r.Page,
			Relevance: r.Relevance(),
		}
	}

	answer := &Answer{
		Answer:      strings.TrimSpace(answerText),
		Citations:   citations,
		ContextUsed: len(results) > 0,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(answer); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(payload)); err != nil {
				s.log.Debugw("cache answer failed", "error", err)
			}
		}
	}

	return answer, nil
}

// Search exposes raw knowledge-base retrieval without the LLM step.
func (s *QAService) Search(ctx context.Context, query string, topK int) ([]knowledge.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidInput
	}
	if topK <= 0 {
		topK = s.topK
	}
	return s.store.Query(ctx, query, topK)
}

func buildContextBlock(results []knowledge.Result) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("[Source: %s, Page %d]\n%s", r.Source, r.Page, r.Text))
	}
	return strings.Join(parts, "\n\n")
}

func answerCacheKey(question, employeeID string) string {
	sum := md5.Sum([]byte(question + "|" + employeeID))
	return hex.EncodeToString(sum[:])
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
