package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skillmatrix/metrics"
	"skillmatrix/repository"
	"skillmatrix/utils"
)

// Logger is a Gin middleware for logging HTTP requests and responses.
// It also records the request duration histogram.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		latency := time.Since(startTime)

		method := c.Request.Method
		uri := c.Request.RequestURI
		statusCode := c.Writer.Status()
		clientIP := c.ClientIP()
		errorsStr := c.Errors.ByType(gin.ErrorTypePrivate).String()
		if errorsStr == "" {
			errorsStr = "None"
		}

		c.Writer.Header().Set("X-Response-Time", latency.String())
		metrics.RequestDuration.WithLabelValues(method, c.FullPath()).Observe(latency.Seconds())

		log.Printf("[GIN] %s | %3d | %13v | %15s | %-7s %s\n      Errors: %s",
			startTime.Format("2006/01/02 - 15:04:05"),
			statusCode,
			latency,
			clientIP,
			method,
			uri,
			errorsStr,
		)
	}
}

// Cors is a Gin middleware for enabling Cross-Origin Resource Sharing (CORS).
// It allows requests from any origin.
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, User-Agent, token")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// AuthRequired checks the static bearer token in the "token" header against
// the users table. Requests without a matching token are rejected with 401.
func AuthRequired(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("token")
		if token == "" {
			utils.SendJSONError(c, http.StatusUnauthorized, "Invalid Token", nil)
			return
		}
		user, err := users.GetByToken(token)
		if err != nil {
			utils.SendJSONError(c, http.StatusInternalServerError, "Could not verify token.", err)
			return
		}
		if user == nil || user.Username == "" {
			utils.SendJSONError(c, http.StatusUnauthorized, "Invalid Token", nil)
			return
		}
		c.Set("user", user)
		c.Next()
	}
}
