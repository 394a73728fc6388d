package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"onboardhub/internal/ai"
	appsvc "onboardhub/internal/app"
	"onboardhub/internal/bootstrap"
	"onboardhub/internal/cache"
	"onboardhub/internal/repository"
	"onboardhub/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	employeeRepo := repository.NewEmployeeRepository(app.DB)
	planRepo := repository.NewPlanRepository(app.DB)
	progressRepo := repository.NewProgressRepository(app.DB)
	docRepo := repository.NewDocumentRepository(app.DB)

	chatConfig := ai.ChatConfig{
		BaseURL: app.Config.LLM.BaseURL,
		APIKey:  app.Config.LLM.APIKey,
		Model:   app.Config.LLM.Model,
	}

	var answerCache appsvc.AnswerCache
	if app.Redis != nil {
		answerCache = cache.NewAnswerCache(app.Redis,
			time.Duration(app.Config.Redis.AnswerTTLSeconds)*time.Second)
	}

	employeeService := appsvc.NewEmployeeService(employeeRepo, app.Scheduler, app.Log)
	documentService := appsvc.NewDocumentService(
		app.Pipeline, app.Store, docRepo, app.Config.App.UploadDir, app.Log)
	qaService := appsvc.NewQAService(
		app.Store, employeeRepo, app.LLMClient, chatConfig, answerCache,
		app.Config.Knowledge.TopK, app.Log)
	onboardingService := appsvc.NewOnboardingService(
		employeeRepo, planRepo, progressRepo, app.Store, app.LLMClient, chatConfig, app.Log)

	employeeHandler := handler.NewEmployeeHandler(employeeService)
	documentHandler := handler.NewDocumentHandler(documentService)
	knowledgeHandler := handler.NewKnowledgeHandler(qaService)
	planHandler := handler.NewPlanHandler(onboardingService)
	progressHandler := handler.NewProgressHandler(onboardingService)
	reminderHandler := handler.NewReminderHandler(app.Scheduler)

	v1 := router.Group("/api/v1")

	documents := v1.Group("/documents")
	documents.POST("/upload", documentHandler.Upload)
	documents.GET("", documentHandler.List)
	documents.DELETE("/:filename", documentHandler.Delete)
	documents.POST("/reconcile", documentHandler.Reconcile)

	knowledgeGroup := v1.Group("/knowledge")
	knowledgeGroup.POST("/ask", knowledgeHandler.Ask)
	knowledgeGroup.POST("/search", knowledgeHandler.Search)

	employees := v1.Group("/employees")
	employees.POST("", employeeHandler.Create)
	employees.GET("", employeeHandler.List)
	employees.GET("/:employee_id", employeeHandler.Get)
	employees.POST("/:employee_id/plan", planHandler.Generate)
	employees.GET("/:employee_id/plan", planHandler.GetLatest)
	employees.GET("/:employee_id/checklist", planHandler.GetChecklist)
	employees.GET("/:employee_id/progress", progressHandler.List)
	employees.PUT("/:employee_id/progress/:task_id", progressHandler.UpdateTask)

	v1.POST("/reminders", reminderHandler.Schedule)

	return router
}
