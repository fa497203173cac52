package api

import (
	"net/http"

	"pdfquiz/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the API surface.
func SetupRoutes(router *gin.Engine, handler *handlers.Handler, frontendURL string) {
	router.Use(CORSMiddleware(frontendURL))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(SessionOwner())
	{
		api.POST("/quizzes/generate", handler.HandleGenerateQuiz)

		api.GET("/history", handler.HandleListHistory)
		api.GET("/history/:id", handler.HandleGetHistoryEntry)
		api.DELETE("/history/:id", handler.HandleDeleteHistoryEntry)
		api.PATCH("/history/:id/score", handler.HandleUpdateScore)
	}
}
