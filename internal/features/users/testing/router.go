package users_testing

import (
	users_identity "creativeflow/internal/features/users/identity"
	users_middleware "creativeflow/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type protectedRoutesController interface {
	RegisterProtectedRoutes(router *gin.RouterGroup)
}

// CreateTestRouter mounts every controller behind the auth middleware under /api.
func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	return CreateTestRouterWithPublic(nil, controllers...)
}

// CreateTestRouterWithPublic mounts public controllers without auth and calls
// RegisterProtectedRoutes on those that have protected routes too.
func CreateTestRouterWithPublic(public []ControllerInterface, protected ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api")
	protectedGroup := api.Group("")
	protectedGroup.Use(users_middleware.AuthMiddleware(users_identity.GetVerifier()))

	for _, controller := range public {
		controller.RegisterRoutes(api)

		if withProtected, ok := controller.(protectedRoutesController); ok {
			withProtected.RegisterProtectedRoutes(protectedGroup)
		}
	}

	for _, controller := range protected {
		controller.RegisterRoutes(protectedGroup)
	}

	return router
}
