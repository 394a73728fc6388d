package planparse

import "fmt"

const (
	ItemStatusPending   = "pending"
	ItemStatusCompleted = "completed"
)

// ChecklistItem is one actionable entry derived from a plan. IDs are
// sequential within a single generation and restart at task_1 on every
// regeneration; the durable progress ledger keeps its own rows.
type ChecklistItem struct {
	ID     string `json:"id"`
	Phase  string `json:"phase"`
	Task   string `json:"task"`
	Status string `json:"status"`
}

// BuildChecklist flattens the plan into checklist items, numbering tasks
// task_1, task_2, ... across phase boundaries. A plan with no recognizable
// phases still yields a single fallback item so every generated plan has at
// least one actionable entry.
func BuildChecklist(plan Plan) []ChecklistItem {
	var checklist []ChecklistItem
	taskID := 1

	for _, phase := range plan.Phases {
		for _, task := range phase.Tasks {
			checklist = append(checklist, ChecklistItem{
				ID:     fmt.Sprintf("task_%d", taskID),
				Phase:  phase.Title,
				Task:   task,
				Status: ItemStatusPending,
			})
			taskID++
		}
	}

	if len(checklist) == 0 {
		checklist = append(checklist, ChecklistItem{
			ID:     "task_1",
			Phase:  "General",
			Task:   "Review onboarding plan",
			Status: ItemStatusPending,
		})
	}

	return checklist
}
