package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Logger        *zap.Logger
	KanjiHandler  *KanjiHandler
	WordsHandler  *WordsHandler
	QuizHandler   *QuizHandler
	StateHandler  *StateHandler
	ExportHandler *ExportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(cfg.Logger), ClientID())

	router.GET("/healthz", HealthCheck)

	api := router.Group("/api")

	kanji := api.Group("/kanji")
	kanji.GET("", cfg.KanjiHandler.List)
	kanji.GET("/count", cfg.KanjiHandler.Count)
	kanji.GET("/random", cfg.KanjiHandler.Random)
	kanji.GET("/groups", cfg.KanjiHandler.Groups)
	kanji.GET("/search", cfg.KanjiHandler.Search)
	kanji.GET("/statistics", cfg.KanjiHandler.Statistics)
	kanji.GET("/:index", cfg.KanjiHandler.Get)

	words := api.Group("/words")
	words.GET("", cfg.WordsHandler.List)
	words.GET("/statistics", cfg.WordsHandler.Statistics)
	words.GET("/export", cfg.WordsHandler.Export)

	quizzes := api.Group("/quizzes")
	quizzes.POST("", cfg.QuizHandler.Create)
	quizzes.GET("/:id", cfg.QuizHandler.Get)
	quizzes.PUT("/:id/settings", cfg.QuizHandler.Configure)
	quizzes.POST("/:id/start", cfg.QuizHandler.Start)
	quizzes.POST("/:id/answer", cfg.QuizHandler.Answer)
	quizzes.POST("/:id/advance", cfg.QuizHandler.Advance)
	quizzes.POST("/:id/stop", cfg.QuizHandler.Stop)
	quizzes.POST("/:id/reset", cfg.QuizHandler.Reset)
	quizzes.GET("/:id/result", cfg.QuizHandler.Result)
	quizzes.DELETE("/:id", cfg.QuizHandler.Delete)

	state := api.Group("/state")
	state.GET("", cfg.StateHandler.Get)
	state.PUT("", cfg.StateHandler.Update)
	state.POST("/navigate", cfg.StateHandler.Navigate)

	api.GET("/export", cfg.ExportHandler.StudyData)

	return router
}
