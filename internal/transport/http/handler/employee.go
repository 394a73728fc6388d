package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"onboardhub/internal/app"
	"onboardhub/internal/transport/http/response"
)

type EmployeeHandler struct {
	employeeService *app.EmployeeService
}

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,max=64"`
	Name       string `json:"name" binding:"required,max=128"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"max=32"`
	Role       string `json:"role" binding:"max=128"`
	Department string `json:"department" binding:"max=128"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
}

func NewEmployeeHandler(employeeService *app.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	var startDate *time.Time
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		startDate = &parsed
	}

	employee, err := h.employeeService.Create(app.CreateEmployeeInput{
		EmployeeID: req.EmployeeID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       req.Role,
		Department: req.Department,
		StartDate:  startDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrEmployeeExists):
			response.Error(c, http.StatusConflict, response.CodeEmployeeExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create employee failed")
		}
		return
	}

	response.OK(c, employee)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, err := h.employeeService.Get(c.Param("employee_id"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrEmployeeNotFound):
			response.Error(c, http.StatusNotFound, response.CodeEmployeeNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get employee failed")
		}
		return
	}
	response.OK(c, employee)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employeeService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list employees failed")
		return
	}
	response.OK(c, employees)
}
