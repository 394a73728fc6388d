package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"onboardhub/internal/ai"
	"onboardhub/internal/app"
	"onboardhub/internal/transport/http/response"
)

type KnowledgeHandler struct {
	qaService *app.QAService
}

type AskRequest struct {
	Question   string `json:"question" binding:"required"`
	EmployeeID string `json:"employee_id"`
}

type SearchRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k"`
}

func NewKnowledgeHandler(qaService *app.QAService) *KnowledgeHandler {
	return &KnowledgeHandler{qaService: qaService}
}

func (h *KnowledgeHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	answer, err := h.qaService.Ask(c.Request.Context(), req.Question, req.EmployeeID)
	if err != nil {
		writeQAError(c, err)
		return
	}
	response.OK(c, answer)
}

func (h *KnowledgeHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	results, err := h.qaService.Search(c.Request.Context(), req.Query, req.TopK)
	if err != nil {
		writeQAError(c, err)
		return
	}
	response.OK(c, gin.H{"results": results, "count": len(results)})
}

func writeQAError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrEmployeeNotFound):
		response.Error(c, http.StatusNotFound, response.CodeEmployeeNotFound, err.Error())
	case errors.Is(err, ai.ErrRateLimited):
		response.Error(c, http.StatusTooManyRequests, response.CodeRateLimited,
			"the language model is rate limited; wait a moment and try again")
	case errors.Is(err, ai.ErrTransport):
		response.Error(c, http.StatusBadGateway, response.CodeLLMUnavailable,
			"the language model is unreachable; check the LLM configuration")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "request failed")
	}
}
