package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                = 0
	CodeBadRequest        = 40000
	CodeEmployeeExists    = 40001
	CodeEmployeeNotFound  = 40401
	CodePlanNotFound      = 40402
	CodeTaskNotFound      = 40403
	CodeDocumentNotFound  = 40404
	CodeRateLimited       = 42900
	CodeInternalServer    = 50000
	CodeStorageUnwritable = 50001
	CodeIngestionFailed   = 50002
	CodeLLMUnavailable    = 50003
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}
