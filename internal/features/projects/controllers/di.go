package projects_controllers

import (
	projects_services "creativeflow/internal/features/projects/services"
)

var projectController = &ProjectController{
	projects_services.GetProjectService(),
}

var memberController = &MemberController{
	projects_services.GetMemberService(),
}

var assetController = &AssetController{
	projects_services.GetAssetService(),
}

func GetProjectController() *ProjectController {
	return projectController
}

func GetMemberController() *MemberController {
	return memberController
}

func GetAssetController() *AssetController {
	return assetController
}
