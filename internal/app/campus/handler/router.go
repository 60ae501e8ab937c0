package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campusrate/pkg/logger"
	"campusrate/pkg/metrics"
)

// SetupRoutes настраивает все маршруты Campus API с использованием Gin.
// Чтение колледжей и отзывов доступно анонимно (OptionalAuthenticate),
// мутации и профиль требуют JWT токен
func SetupRoutes(
	collegeHandler *CollegeHandler,
	reviewHandler *ReviewHandler,
	profileHandler *ProfileHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("campus-api"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "campus-api",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Colleges endpoints
	colleges := router.Group("/colleges")
	{
		// Чтение доступно анонимно, токен лишь включает персональные флаги
		colleges.GET("", authMiddleware.OptionalAuthenticate(), collegeHandler.ListColleges)
		colleges.GET("/:id", authMiddleware.OptionalAuthenticate(), collegeHandler.GetCollege)
		colleges.GET("/:id/reviews", authMiddleware.OptionalAuthenticate(), reviewHandler.GetCollegeReviews)

		colleges.POST("", authMiddleware.Authenticate(), collegeHandler.CreateCollege)
		colleges.POST("/:id/save", authMiddleware.Authenticate(), collegeHandler.ToggleBookmark)
	}

	// Reviews endpoints - мутации требуют аутентификации
	reviews := router.Group("/reviews")
	reviews.Use(authMiddleware.Authenticate())
	{
		reviews.POST("", reviewHandler.CreateReview)
		reviews.PATCH("/:review_id", reviewHandler.UpdateReview)
		reviews.DELETE("/:review_id", reviewHandler.DeleteReview)
		reviews.POST("/:review_id/like", reviewHandler.ToggleLike)
	}

	// Profile endpoints - всё про текущего пользователя
	profile := router.Group("/profile")
	profile.Use(authMiddleware.Authenticate())
	{
		profile.GET("/reviews", profileHandler.GetMyReviews)
		profile.GET("/liked-reviews", profileHandler.GetLikedReviews)
		profile.GET("/saved-colleges", profileHandler.GetSavedColleges)
		profile.GET("/stats", profileHandler.GetStats)
	}

	return router
}
