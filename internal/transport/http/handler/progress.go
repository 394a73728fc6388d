package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"onboardhub/internal/app"
	"onboardhub/internal/transport/http/response"
)

type ProgressHandler struct {
	onboardingService *app.OnboardingService
}

type UpdateTaskRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"max=1024"`
}

func NewProgressHandler(onboardingService *app.OnboardingService) *ProgressHandler {
	return &ProgressHandler{onboardingService: onboardingService}
}

func (h *ProgressHandler) List(c *gin.Context) {
	tasks, err := h.onboardingService.GetProgress(c.Param("employee_id"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrEmployeeNotFound):
			response.Error(c, http.StatusNotFound, response.CodeEmployeeNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list progress failed")
		}
		return
	}

	completed := 0
	for _, task := range tasks {
		if task.Status == "completed" {
			completed++
		}
	}
	response.OK(c, gin.H{"tasks": tasks, "total": len(tasks), "completed": completed})
}

func (h *ProgressHandler) UpdateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	err := h.onboardingService.UpdateTaskStatus(c.Param("employee_id"), c.Param("task_id"), req.Status, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest,
				"status must be pending or completed")
		case errors.Is(err, app.ErrTaskNotFound):
			response.Error(c, http.StatusNotFound, response.CodeTaskNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update task failed")
		}
		return
	}

	response.OK(c, gin.H{"task_id": c.Param("task_id"), "status": req.Status})
}
