package projects_services

import (
	"sync"

	"creativeflow/internal/config"
	"creativeflow/internal/features/analytics"
	"creativeflow/internal/features/disk"
	projects_repositories "creativeflow/internal/features/projects/repositories"
	users_services "creativeflow/internal/features/users/services"
	"creativeflow/internal/util/logger"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var memberRepository = &projects_repositories.MemberRepository{}
var assetRepository = &projects_repositories.AssetRepository{}

var projectService = &ProjectService{
	projectRepository: projectRepository,
	memberRepository:  memberRepository,
	assetRepository:   assetRepository,
	eventRecorder:     analytics.GetAnalyticsService(),
	fileStore:         disk.GetFileStore(),
	logger:            logger.GetLogger(),
}

var memberService = &MemberService{
	memberRepository: memberRepository,
	userService:      users_services.GetUserService(),
	projectService:   projectService,
}

var assetService = &AssetService{
	assetRepository: assetRepository,
	projectService:  projectService,
	maxUploadBytes:  config.GetEnv().MaxUploadSizeMB * 1024 * 1024,
}

var userDeletionListener = &UserDeletionListener{
	projectRepository: projectRepository,
	memberRepository:  memberRepository,
	assetRepository:   assetRepository,
	projectService:    projectService,
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetMemberService() *MemberService {
	return memberService
}

func GetAssetService() *AssetService {
	return assetService
}

var setupOnce sync.Once

func SetupDependencies() {
	setupOnce.Do(func() {
		users_services.GetManagementService().AddUserDeletionListener(userDeletionListener)
	})
}
