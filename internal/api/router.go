package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tylervsnyc/chess-learning-tree/internal/logger"
)

const requestIDHeader = "X-Request-ID"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	cfg.AllowHeaders = append(cfg.AllowHeaders, requestIDHeader)
	cfg.ExposeHeaders = []string{requestIDHeader}
	return cors.New(cfg)
}

func NewRouter(a *LessonApi, log *logger.Logger, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log))
	if len(origins) > 0 {
		r.Use(CORS(origins))
	}

	r.GET("/healthz", HealthCheck)
	r.GET("/lessons", a.Lessons)
	r.GET("/lessons/:lesson_id", a.LessonInfo)
	r.GET("/lessons/:lesson_id/puzzles", a.LessonPuzzles)
	r.GET("/puzzles/random", a.RandomPuzzle)
	r.POST("/puzzles/:puzzle_id/attempts", a.Attempt)
	return r
}
