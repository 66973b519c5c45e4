package api

import (
	"github.com/gin-gonic/gin"
	"github.com/questgen-flow/backend/internal/api/handler"
	"github.com/questgen-flow/backend/internal/api/middleware"
	"github.com/questgen-flow/backend/internal/config"
	"github.com/questgen-flow/backend/internal/logger"
	"github.com/questgen-flow/backend/internal/repository"
	"github.com/questgen-flow/backend/internal/service"
	"github.com/questgen-flow/backend/internal/storage"
)

// SetupRouter configures the Gin router with all routes.
func SetupRouter(
	generation *service.GenerationService,
	exams *repository.ExamRepository,
	store storage.ArtifactStorage,
	log *logger.Logger,
	cfg *config.Config,
) *gin.Engine {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler()
	generationHandler := handler.NewGenerationHandler(generation, store, cfg.Generation.MaxQuestions)
	examHandler := handler.NewExamHandler(exams)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		// Generation jobs
		v1.POST("/generations", generationHandler.Submit)
		v1.GET("/generations/:id", generationHandler.Status)
		v1.GET("/generations/:id/export", generationHandler.DownloadExport)

		// Archived exams
		v1.GET("/exams", examHandler.ListExams)
		v1.GET("/exams/:job_id", examHandler.GetExam)
	}

	return r
}
