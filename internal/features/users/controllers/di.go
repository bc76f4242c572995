package users_controllers

import (
	users_identity "creativeflow/internal/features/users/identity"
	users_services "creativeflow/internal/features/users/services"
)

var authController = &AuthController{
	userService:     users_services.GetUserService(),
	sessionVerifier: users_identity.GetSessionVerifier(),
}

var managementController = &ManagementController{
	managementService: users_services.GetManagementService(),
}

func GetAuthController() *AuthController {
	return authController
}

func GetManagementController() *ManagementController {
	return managementController
}
