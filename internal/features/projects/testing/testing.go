package projects_testing

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"creativeflow/internal/features/analytics"
	projects_dto "creativeflow/internal/features/projects/dto"
	projects_models "creativeflow/internal/features/projects/models"
	projects_repositories "creativeflow/internal/features/projects/repositories"
	projects_services "creativeflow/internal/features/projects/services"
	users_dto "creativeflow/internal/features/users/dto"
	users_enums "creativeflow/internal/features/users/enums"
	users_testing "creativeflow/internal/features/users/testing"
	"creativeflow/internal/storage"
	test_utils "creativeflow/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// CreateTestRouter mounts controllers behind auth together with the analytics
// routes and wires the cross-feature listeners.
func CreateTestRouter(controllers ...users_testing.ControllerInterface) *gin.Engine {
	analytics.SetupDependencies()
	projects_services.SetupDependencies()

	controllers = append(controllers, analytics.GetAnalyticsController())

	return users_testing.CreateTestRouter(controllers...)
}

func NewCreateProjectRequest(name string) *projects_dto.CreateProjectRequestDTO {
	return &projects_dto.CreateProjectRequestDTO{
		Name:      name,
		BrandName: name + " Brand",
		Industry:  "Technology",
	}
}

func CreateTestProject(
	t *testing.T,
	name string,
	owner *users_dto.AccessTokenResponseDTO,
	router *gin.Engine,
) *projects_dto.ProjectResponseDTO {
	t.Helper()

	return CreateTestProjectFromRequest(t, NewCreateProjectRequest(name), owner, router)
}

func CreateTestProjectFromRequest(
	t *testing.T,
	request *projects_dto.CreateProjectRequestDTO,
	owner *users_dto.AccessTokenResponseDTO,
	router *gin.Engine,
) *projects_dto.ProjectResponseDTO {
	t.Helper()

	resp := test_utils.MakePostRequest(t, router, "/api/projects", "Bearer "+owner.Token, request, http.StatusCreated)

	var project projects_dto.ProjectResponseDTO
	require.NoError(t, json.Unmarshal(resp.Body, &project))

	return &project
}

// AddTestMember inserts a membership row directly, skipping the permission
// checks of the members API.
func AddTestMember(projectID, userID uuid.UUID, role users_enums.ProjectRole) {
	member := &projects_models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now().UTC(),
	}

	memberRepository := &projects_repositories.MemberRepository{}
	if err := memberRepository.CreateMember(storage.GetDb(), member); err != nil {
		panic(err)
	}
}

func GetTestProject(projectID uuid.UUID) *projects_models.Project {
	projectRepository := &projects_repositories.ProjectRepository{}

	project, err := projectRepository.GetProjectByID(projectID)
	if err != nil {
		panic(err)
	}

	return project
}
