package users_middleware

import (
	users_enums "creativeflow/internal/features/users/enums"
	users_interfaces "creativeflow/internal/features/users/interfaces"
	users_models "creativeflow/internal/features/users/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the caller through verifier and adds the user to
// the context. Requests without identity stop with 401.
func AuthMiddleware(verifier users_interfaces.IdentityVerifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, err := verifier.Verify(ctx.Request)
		if err != nil || user == nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			ctx.Abort()
			return
		}

		ctx.Set("user", user)
		ctx.Next()
	}
}

func RequireRole(requiredRole users_enums.UserRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := GetUserFromContext(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			ctx.Abort()
			return
		}

		if user.Role != requiredRole {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

// GetUserFromContext helper function to extract user from gin context
func GetUserFromContext(ctx *gin.Context) (*users_models.User, bool) {
	userInterface, exists := ctx.Get("user")
	if !exists {
		return nil, false
	}

	user, ok := userInterface.(*users_models.User)

	return user, ok && user != nil
}
