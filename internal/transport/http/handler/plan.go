package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"onboardhub/internal/ai"
	"onboardhub/internal/app"
	"onboardhub/internal/transport/http/response"
)

type PlanHandler struct {
	onboardingService *app.OnboardingService
}

func NewPlanHandler(onboardingService *app.OnboardingService) *PlanHandler {
	return &PlanHandler{onboardingService: onboardingService}
}

func (h *PlanHandler) Generate(c *gin.Context) {
	result, err := h.onboardingService.GeneratePlan(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		writePlanError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *PlanHandler) GetLatest(c *gin.Context) {
	result, err := h.onboardingService.GetLatestPlan(c.Param("employee_id"))
	if err != nil {
		writePlanError(c, err)
		return
	}
	response.OK(c, result)
}

// GetChecklist returns the latest checklist and generates a plan on demand
// when the employee has none yet.
func (h *PlanHandler) GetChecklist(c *gin.Context) {
	items, err := h.onboardingService.GetChecklist(c.Request.Context(), c.Param("employee_id"))
	if err != nil {
		writePlanError(c, err)
		return
	}
	response.OK(c, gin.H{"checklist_items": items, "count": len(items)})
}

func writePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrEmployeeNotFound):
		response.Error(c, http.StatusNotFound, response.CodeEmployeeNotFound, err.Error())
	case errors.Is(err, app.ErrPlanNotFound):
		response.Error(c, http.StatusNotFound, response.CodePlanNotFound, err.Error())
	case errors.Is(err, ai.ErrRateLimited):
		response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited,
			"the language model is rate limited; wait a moment and try again")
	case errors.Is(err, ai.ErrTransport):
		response.Error(c, http.StatusBadGateway, response.CodeLLMUnavailable,
			"the language model is unreachable; check the LLM configuration")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "plan request failed")
	}
}
