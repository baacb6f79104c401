package server

import (
	"fmt"
	"net/http"

	"accounts/internal/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full route table.
func (s *Server) RegisterRoutes() http.Handler {
	if !s.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // cookie-based auth
	}))

	r.GET("/health", s.healthHandler)

	// Account management
	r.PUT("/auth/register", s.auth.Register)
	r.POST("/auth/login", s.auth.Login)
	r.DELETE("/auth/user", s.auth.Delete)

	// Test/demo endpoints
	r.GET("/test", s.testHandler)
	r.GET("/test/users", auth.VerifyToken(s.tokens, s.logger), s.usersTestHandler)
	r.GET("/test/redis", s.getRedisTestHandler)
	r.POST("/test/redis", s.setRedisTestHandler)

	r.NoRoute(s.noRouteHandler)

	return r
}

// requestLogger logs every incoming request with method and path.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.logger.Info("received request", "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Next()
	}
}

// noRouteHandler answers unmatched routes: verbose in development, opaque
// otherwise.
func (s *Server) noRouteHandler(c *gin.Context) {
	if s.cfg.IsDevelopment() {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("%s %s is not a valid API", c.Request.Method, c.Request.URL.Path),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route"})
}
