package server

import (
	"errors"
	"net/http"

	"accounts/internal/cache"

	"github.com/gin-gonic/gin"
)

// healthHandler reports database and cache status.
func (s *Server) healthHandler(c *gin.Context) {
	ctx := c.Request.Context()

	response := gin.H{"database": s.db.Health(ctx)}

	cacheHealth := map[string]string{"status": "up"}
	if err := s.cache.Ping(ctx); err != nil {
		cacheHealth["status"] = "down"
		cacheHealth["error"] = err.Error()
	}
	response["cache"] = cacheHealth

	c.JSON(http.StatusOK, response)
}

// testHandler handles GET /test, a bare liveness echo.
func (s *Server) testHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "test"})
}

// usersTestHandler handles GET /test/users. Token-protected; dumps the users
// table with hashes projected out.
func (s *Server) usersTestHandler(c *gin.Context) {
	rows := s.db.Query(c.Request.Context(), "SELECT * FROM users")
	for _, row := range rows {
		delete(row, "password_hash")
	}
	c.JSON(http.StatusOK, gin.H{"message": "Users returned", "data": rows})
}

// getRedisTestHandler handles GET /test/redis?key=
func (s *Server) getRedisTestHandler(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing key query parameter"})
		return
	}

	value, err := s.cache.Get(c.Request.Context(), key)
	if err != nil && !errors.Is(err, cache.ErrKeyNotFound) {
		s.logger.Error("cache read failed", "op", "server.getRedisTest", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": value})
}

type setRedisRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// setRedisTestHandler handles POST /test/redis
func (s *Server) setRedisTestHandler(c *gin.Context) {
	var req setRedisRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" || req.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing key or value in the request body"})
		return
	}

	if err := s.cache.Set(c.Request.Context(), req.Key, req.Value); err != nil {
		s.logger.Error("cache write failed", "op", "server.setRedisTest", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Key-value pair has been set in Redis"})
}
