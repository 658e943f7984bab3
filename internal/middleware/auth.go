package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medrelay-dev/medrelay/internal/services"
	"github.com/medrelay-dev/medrelay/internal/types"
)

// AuthMiddleware resolves the bearer header through the identity
// federation and stores the caller in the request context. A nil caller
// gets the same generic 401 whatever the underlying reason.
func AuthMiddleware(service *services.NotificationService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		caller := service.Authenticate(authHeader)

		if caller == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextCallerKey, *caller)
		ctx.Next()
	}
}
