package users_services

import (
	user_repositories "creativeflow/internal/features/users/repositories"
)

var userRepository = &user_repositories.UserRepository{}

var userService = &UserService{
	userRepository: userRepository,
}
var managementService = &UserManagementService{
	userRepository: userRepository,
	userService:    userService,
}

func GetUserService() *UserService {
	return userService
}

func GetManagementService() *UserManagementService {
	return managementService
}
