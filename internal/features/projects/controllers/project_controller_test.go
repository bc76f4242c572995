package projects_controllers

import (
	"net/http"
	"testing"

	"creativeflow/internal/features/analytics"
	projects_dto "creativeflow/internal/features/projects/dto"
	projects_enums "creativeflow/internal/features/projects/enums"
	projects_models "creativeflow/internal/features/projects/models"
	projects_testing "creativeflow/internal/features/projects/testing"
	users_enums "creativeflow/internal/features/users/enums"
	users_testing "creativeflow/internal/features/users/testing"
	"creativeflow/internal/storage"
	test_utils "creativeflow/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateProject_WhenUserIsAuthenticated_OwnerMembershipAndEventCreated(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)

	project := projects_testing.CreateTestProject(t, "Launch Campaign", owner, router)

	assert.Equal(t, "Launch Campaign", project.Name)
	assert.Equal(t, projects_enums.ProjectStatusPlanning, project.Status)
	assert.Equal(t, 0, project.Progress)
	require.NotNil(t, project.BrandName)
	assert.Equal(t, "Launch Campaign Brand", *project.BrandName)
	require.NotNil(t, project.CreatedBy)
	assert.Equal(t, owner.UserID, *project.CreatedBy)
	require.NotNil(t, project.UserRole)
	assert.Equal(t, users_enums.ProjectRoleOwner, *project.UserRole)

	var members []projects_models.ProjectMember
	require.NoError(t, storage.GetDb().Where("project_id = ?", project.ID).Find(&members).Error)
	require.Len(t, members, 1)
	assert.Equal(t, owner.UserID, members[0].UserID)
	assert.Equal(t, users_enums.ProjectRoleOwner, members[0].Role)

	assert.Equal(t, int64(1), countProjectEvents(project.ID, analytics.EventProjectCreated))
}

func Test_CreateProject_WithAllFields_FieldsStored(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)

	description := "Spring refresh"
	status := projects_enums.ProjectStatusActive
	progress := 40
	startDate := "2025-03-01"
	deadline := "2025-04-15"
	request := projects_testing.NewCreateProjectRequest("Spring")
	request.Description = &description
	request.Status = &status
	request.Progress = &progress
	request.StartDate = &startDate
	request.Deadline = &deadline

	project := projects_testing.CreateTestProjectFromRequest(t, request, owner, router)

	assert.Equal(t, projects_enums.ProjectStatusActive, project.Status)
	assert.Equal(t, 40, project.Progress)
	require.NotNil(t, project.StartDate)
	assert.Equal(t, "2025-03-01", project.StartDate.Format("2006-01-02"))
	require.NotNil(t, project.Deadline)
	assert.Equal(t, "2025-04-15", project.Deadline.Format("2006-01-02"))
	assert.Nil(t, project.CompletedAt)
}

func Test_CreateProject_WithoutAuth_ReturnsUnauthorizedAndNothingStored(t *testing.T) {
	router := createProjectTestRouter()
	name := "Unauthorized " + uuid.New().String()

	test_utils.MakePostRequest(
		t,
		router,
		"/api/projects",
		"",
		projects_testing.NewCreateProjectRequest(name),
		http.StatusUnauthorized,
	)

	var count int64
	require.NoError(t, storage.GetDb().Model(&projects_models.Project{}).Where("name = ?", name).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func Test_GetProjects_WithoutAuth_ReturnsUnauthorized(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	projects_testing.CreateTestProject(t, "Hidden "+uuid.New().String(), owner, router)

	resp := test_utils.MakeGetRequest(t, router, "/api/projects", "", http.StatusUnauthorized)

	assert.JSONEq(t, `{"error":"Unauthorized"}`, string(resp.Body))
	assert.NotContains(t, string(resp.Body), "projects")
}

func Test_CreateProject_WithMissingRequiredFields_ReturnsFieldErrors(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/projects",
		"Bearer "+owner.Token,
		map[string]any{"name": "  "},
		http.StatusBadRequest,
	)

	body := string(resp.Body)
	assert.Contains(t, body, "Validation failed")
	assert.Contains(t, body, "Project name is required")
	assert.Contains(t, body, "Brand name is required")
	assert.Contains(t, body, "Industry is required")
}

func Test_CreateProject_WithDeadlineBeforeStart_ReturnsBadRequest(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)

	startDate := "2025-05-10"
	deadline := "2025-05-01"
	request := projects_testing.NewCreateProjectRequest("Backwards")
	request.StartDate = &startDate
	request.Deadline = &deadline

	resp := test_utils.MakePostRequest(t, router, "/api/projects", "Bearer "+owner.Token, request, http.StatusBadRequest)
	assert.Contains(t, string(resp.Body), "Deadline cannot be before the start date")
}

func Test_CreateProject_WithProgressOutOfRange_ReturnsBadRequest(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)

	body := map[string]any{"name": "P", "brandName": "B", "industry": "I", "progress": 101}

	resp := test_utils.MakePostRequest(t, router, "/api/projects", "Bearer "+owner.Token, body, http.StatusBadRequest)
	assert.Contains(t, string(resp.Body), "Progress must be between 0 and 100")
}

func Test_CreateProject_WithUnknownField_ReturnsBadRequest(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)

	body := map[string]any{"name": "P", "brandName": "B", "industry": "I", "createdBy": uuid.New().String()}

	resp := test_utils.MakePostRequest(t, router, "/api/projects", "Bearer "+owner.Token, body, http.StatusBadRequest)
	assert.Contains(t, string(resp.Body), "Unknown field")
}

func Test_GetProjects_AsMember_ReturnsOnlyMemberProjects(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	member := users_testing.CreateTestUser(users_enums.UserRoleUser)

	shared := projects_testing.CreateTestProject(t, "Shared", owner, router)
	projects_testing.CreateTestProject(t, "Private", owner, router)
	projects_testing.AddTestMember(shared.ID, member.UserID, users_enums.ProjectRoleMember)

	var response projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/projects", "Bearer "+member.Token, http.StatusOK, &response)

	require.Len(t, response.Projects, 1)
	assert.Equal(t, shared.ID, response.Projects[0].ID)
	require.NotNil(t, response.Projects[0].UserRole)
	assert.Equal(t, users_enums.ProjectRoleMember, *response.Projects[0].UserRole)
}

func Test_GetProjects_WithNoMemberships_ReturnsEmptyList(t *testing.T) {
	router := createProjectTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleUser)

	resp := test_utils.MakeGetRequest(t, router, "/api/projects", "Bearer "+user.Token, http.StatusOK)
	assert.JSONEq(t, `{"projects":[]}`, string(resp.Body))
}

func Test_GetProjects_AsAdmin_ReturnsProjectsOfOthers(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)

	project := projects_testing.CreateTestProject(t, "Visible To Admin", owner, router)

	var response projects_dto.ListProjectsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(t, router, "/api/projects", "Bearer "+admin.Token, http.StatusOK, &response)

	found := false
	for _, p := range response.Projects {
		if p.ID == project.ID {
			found = true
			assert.Nil(t, p.UserRole)
		}
	}
	assert.True(t, found)
}

func Test_GetProject_AsNonMember_ReturnsForbidden(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	outsider := users_testing.CreateTestUser(users_enums.UserRoleUser)

	project := projects_testing.CreateTestProject(t, "Secret", owner, router)

	resp := test_utils.MakeGetRequest(t, router, "/api/projects/"+project.ID.String(), "Bearer "+outsider.Token, http.StatusForbidden)
	assert.JSONEq(t, `{"error":"Forbidden"}`, string(resp.Body))
}

func Test_GetProject_WithUnknownID_ReturnsNotFound(t *testing.T) {
	router := createProjectTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleUser)

	test_utils.MakeGetRequest(t, router, "/api/projects/"+uuid.New().String(), "Bearer "+user.Token, http.StatusNotFound)
}

func Test_GetProject_WithInvalidID_ReturnsBadRequest(t *testing.T) {
	router := createProjectTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleUser)

	resp := test_utils.MakeGetRequest(t, router, "/api/projects/not-a-uuid", "Bearer "+user.Token, http.StatusBadRequest)
	assert.Contains(t, string(resp.Body), "Invalid project ID")
}

func Test_UpdateProject_WhenStatusBecomesCompleted_CompletedAtStampedAndEventWritten(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	project := projects_testing.CreateTestProject(t, "Finishing", owner, router)

	status := projects_enums.ProjectStatusCompleted
	progress := 100
	var updated projects_dto.ProjectResponseDTO
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		"/api/projects/"+project.ID.String(),
		"Bearer "+owner.Token,
		projects_dto.UpdateProjectRequestDTO{Status: &status, Progress: &progress},
		http.StatusOK,
		&updated,
	)

	assert.Equal(t, projects_enums.ProjectStatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.Progress)
	assert.Equal(t, "Finishing", updated.Name)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, int64(1), countProjectEvents(project.ID, analytics.EventProjectUpdated))
	assert.Equal(t, int64(1), countProjectEvents(project.ID, analytics.EventProjectCompleted))

	reopened := projects_enums.ProjectStatusActive
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		"/api/projects/"+project.ID.String(),
		"Bearer "+owner.Token,
		projects_dto.UpdateProjectRequestDTO{Status: &reopened},
		http.StatusOK,
		&updated,
	)

	assert.Nil(t, updated.CompletedAt)
	assert.Nil(t, projects_testing.GetTestProject(project.ID).CompletedAt)
}

func Test_UpdateProject_AsPlainMember_ReturnsForbidden(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	member := users_testing.CreateTestUser(users_enums.UserRoleUser)
	project := projects_testing.CreateTestProject(t, "Owner Only", owner, router)
	projects_testing.AddTestMember(project.ID, member.UserID, users_enums.ProjectRoleMember)

	name := "Hijacked"
	test_utils.MakePutRequest(
		t,
		router,
		"/api/projects/"+project.ID.String(),
		"Bearer "+member.Token,
		projects_dto.UpdateProjectRequestDTO{Name: &name},
		http.StatusForbidden,
	)

	assert.Equal(t, "Owner Only", projects_testing.GetTestProject(project.ID).Name)
}

func Test_UpdateProject_AsProjectAdmin_ProjectUpdated(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	projectAdmin := users_testing.CreateTestUser(users_enums.UserRoleUser)
	project := projects_testing.CreateTestProject(t, "Delegated", owner, router)
	projects_testing.AddTestMember(project.ID, projectAdmin.UserID, users_enums.ProjectRoleAdmin)

	industry := "Retail"
	var updated projects_dto.ProjectResponseDTO
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		"/api/projects/"+project.ID.String(),
		"Bearer "+projectAdmin.Token,
		projects_dto.UpdateProjectRequestDTO{Industry: &industry},
		http.StatusOK,
		&updated,
	)

	require.NotNil(t, updated.Industry)
	assert.Equal(t, "Retail", *updated.Industry)
}

func Test_UpdateProject_WithDeadlineBeforeExistingStart_ReturnsBadRequest(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)

	startDate := "2025-06-01"
	request := projects_testing.NewCreateProjectRequest("Dated")
	request.StartDate = &startDate
	project := projects_testing.CreateTestProjectFromRequest(t, request, owner, router)

	deadline := "2025-05-01"
	resp := test_utils.MakePutRequest(
		t,
		router,
		"/api/projects/"+project.ID.String(),
		"Bearer "+owner.Token,
		projects_dto.UpdateProjectRequestDTO{Deadline: &deadline},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "Deadline cannot be before the start date")
}

func Test_DeleteProject_AsOwner_ProjectAndMembershipsRemoved(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	member := users_testing.CreateTestUser(users_enums.UserRoleUser)
	project := projects_testing.CreateTestProject(t, "Doomed", owner, router)
	projects_testing.AddTestMember(project.ID, member.UserID, users_enums.ProjectRoleMember)

	resp := test_utils.MakeDeleteRequest(t, router, "/api/projects/"+project.ID.String(), "Bearer "+owner.Token, http.StatusOK)
	assert.Contains(t, string(resp.Body), "Project deleted successfully")

	test_utils.MakeGetRequest(t, router, "/api/projects/"+project.ID.String(), "Bearer "+owner.Token, http.StatusNotFound)

	var memberCount int64
	require.NoError(t, storage.GetDb().
		Model(&projects_models.ProjectMember{}).
		Where("project_id = ?", project.ID).
		Count(&memberCount).Error)
	assert.Equal(t, int64(0), memberCount)
	assert.Equal(t, int64(1), countProjectEvents(project.ID, analytics.EventProjectDeleted))
}

func Test_DeleteProject_AsProjectAdmin_ReturnsForbidden(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	projectAdmin := users_testing.CreateTestUser(users_enums.UserRoleUser)
	project := projects_testing.CreateTestProject(t, "Protected", owner, router)
	projects_testing.AddTestMember(project.ID, projectAdmin.UserID, users_enums.ProjectRoleAdmin)

	test_utils.MakeDeleteRequest(t, router, "/api/projects/"+project.ID.String(), "Bearer "+projectAdmin.Token, http.StatusForbidden)
	test_utils.MakeGetRequest(t, router, "/api/projects/"+project.ID.String(), "Bearer "+owner.Token, http.StatusOK)
}

func Test_DeleteProject_AsGlobalAdmin_ProjectDeleted(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	project := projects_testing.CreateTestProject(t, "Moderated", owner, router)

	test_utils.MakeDeleteRequest(t, router, "/api/projects/"+project.ID.String(), "Bearer "+admin.Token, http.StatusOK)
	test_utils.MakeGetRequest(t, router, "/api/projects/"+project.ID.String(), "Bearer "+owner.Token, http.StatusNotFound)
}

func countProjectEvents(projectID uuid.UUID, eventType string) int64 {
	var count int64

	err := storage.GetDb().
		Model(&analytics.AnalyticsEvent{}).
		Where("project_id = ? AND event_type = ?", projectID, eventType).
		Count(&count).Error
	if err != nil {
		panic(err)
	}

	return count
}

func createProjectTestRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(
		GetProjectController(),
		GetMemberController(),
		GetAssetController(),
	)
}
