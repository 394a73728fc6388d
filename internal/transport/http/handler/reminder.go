package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"onboardhub/internal/scheduler"
	"onboardhub/internal/transport/http/response"
)

type ReminderHandler struct {
	scheduler *scheduler.Scheduler
}

type ScheduleReminderRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required"`
	ReminderType  string `json:"reminder_type"`
	Message       string `json:"message" binding:"required,max=2048"`
	ScheduledTime string `json:"scheduled_time" binding:"required"` // RFC 3339
	Channel       string `json:"channel"`
}

func NewReminderHandler(sched *scheduler.Scheduler) *ReminderHandler {
	return &ReminderHandler{scheduler: sched}
}

func (h *ReminderHandler) Schedule(c *gin.Context) {
	var req ScheduleReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	at, err := time.Parse(time.RFC3339, req.ScheduledTime)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "scheduled_time must be RFC 3339")
		return
	}

	id, err := h.scheduler.Schedule(req.EmployeeID, req.ReminderType, req.Message, at, req.Channel)
	if err != nil {
		if errors.Is(err, scheduler.ErrInvalidReminder) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "schedule reminder failed")
		}
		return
	}

	response.OK(c, gin.H{"reminder_id": id, "scheduled_time": at})
}
