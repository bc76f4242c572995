package projects_controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"creativeflow/internal/features/analytics"
	projects_dto "creativeflow/internal/features/projects/dto"
	projects_models "creativeflow/internal/features/projects/models"
	projects_testing "creativeflow/internal/features/projects/testing"
	users_enums "creativeflow/internal/features/users/enums"
	users_testing "creativeflow/internal/features/users/testing"
	"creativeflow/internal/storage"
	test_utils "creativeflow/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_UploadAsset_AsMember_AssetListedAndDownloadable(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	member := users_testing.CreateTestUser(users_enums.UserRoleUser)
	project := projects_testing.CreateTestProject(t, "Moodboard", owner, router)
	projects_testing.AddTestMember(project.ID, member.UserID, users_enums.ProjectRoleMember)

	content := []byte("%PDF-1.4 brand guidelines")
	asset := uploadTestAsset(t, router, project.ID.String(), member.Token, "guidelines.pdf", content)

	assert.Equal(t, "guidelines.pdf", asset.FileName)
	assert.Equal(t, "pdf", asset.FileType)
	assert.Equal(t, int64(len(content)), asset.FileSize)
	require.NotNil(t, asset.UploadedBy)
	assert.Equal(t, member.UserID, *asset.UploadedBy)

	var list projects_dto.ListAssetsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/projects/"+project.ID.String()+"/assets",
		"Bearer "+owner.Token,
		http.StatusOK,
		&list,
	)
	require.Len(t, list.Assets, 1)
	assert.Equal(t, asset.ID, list.Assets[0].ID)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/projects/"+project.ID.String()+"/assets/"+asset.ID.String()+"/download",
		"Bearer "+owner.Token,
		http.StatusOK,
	)
	assert.Equal(t, content, resp.Body)
	assert.Contains(t, resp.Headers.Get("Content-Disposition"), `filename="guidelines.pdf"`)

	assert.Equal(t, int64(1), countProjectEvents(project.ID, analytics.EventAssetUploaded))
}

func Test_UploadAsset_WithDisallowedExtension_ReturnsBadRequest(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	project := projects_testing.CreateTestProject(t, "Scripts", owner, router)

	resp := test_utils.MakeMultipartRequest(
		t,
		router,
		"/api/projects/"+project.ID.String()+"/assets",
		"Bearer "+owner.Token,
		"file",
		"payload.exe",
		[]byte("MZ"),
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "File type must be one of jpg, jpeg, png, pdf, ai, psd")
}

func Test_UploadAsset_WithFileOverLimit_ReturnsBadRequest(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	project := projects_testing.CreateTestProject(t, "Huge", owner, router)

	content := bytes.Repeat([]byte{1}, int(GetAssetController().assetService.MaxUploadBytes())+1)

	resp := test_utils.MakeMultipartRequest(
		t,
		router,
		"/api/projects/"+project.ID.String()+"/assets",
		"Bearer "+owner.Token,
		"file",
		"poster.png",
		content,
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "File must be at most 10 MB")
}

func Test_UploadAsset_WithoutFile_ReturnsBadRequest(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	project := projects_testing.CreateTestProject(t, "Empty", owner, router)

	resp := test_utils.MakeMultipartRequest(
		t,
		router,
		"/api/projects/"+project.ID.String()+"/assets",
		"Bearer "+owner.Token,
		"attachment",
		"logo.png",
		[]byte("png"),
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "File is required")
}

func Test_UploadAsset_AsNonMember_ReturnsForbidden(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	outsider := users_testing.CreateTestUser(users_enums.UserRoleUser)
	project := projects_testing.CreateTestProject(t, "Locked", owner, router)

	test_utils.MakeMultipartRequest(
		t,
		router,
		"/api/projects/"+project.ID.String()+"/assets",
		"Bearer "+outsider.Token,
		"file",
		"logo.png",
		[]byte("png"),
		http.StatusForbidden,
	)
}

func Test_DeleteAsset_AsOtherPlainMember_ReturnsForbidden(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	uploader := users_testing.CreateTestUser(users_enums.UserRoleUser)
	other := users_testing.CreateTestUser(users_enums.UserRoleUser)
	project := projects_testing.CreateTestProject(t, "Shared Drive", owner, router)
	projects_testing.AddTestMember(project.ID, uploader.UserID, users_enums.ProjectRoleMember)
	projects_testing.AddTestMember(project.ID, other.UserID, users_enums.ProjectRoleMember)

	asset := uploadTestAsset(t, router, project.ID.String(), uploader.Token, "logo.png", []byte("png"))

	assetURL := "/api/projects/" + project.ID.String() + "/assets/" + asset.ID.String()
	test_utils.MakeDeleteRequest(t, router, assetURL, "Bearer "+other.Token, http.StatusForbidden)
	test_utils.MakeDeleteRequest(t, router, assetURL, "Bearer "+uploader.Token, http.StatusOK)
	test_utils.MakeGetRequest(t, router, assetURL+"/download", "Bearer "+owner.Token, http.StatusNotFound)
}

func Test_DeleteProject_WithAssets_AssetsRemoved(t *testing.T) {
	router := createProjectTestRouter()
	owner := users_testing.CreateTestUser(users_enums.UserRoleUser)
	project := projects_testing.CreateTestProject(t, "Archive", owner, router)
	uploadTestAsset(t, router, project.ID.String(), owner.Token, "cover.jpg", []byte("jpg"))

	test_utils.MakeDeleteRequest(t, router, "/api/projects/"+project.ID.String(), "Bearer "+owner.Token, http.StatusOK)

	var count int64
	require.NoError(t, storage.GetDb().Model(&projects_models.ProjectAsset{}).Where("project_id = ?", project.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func uploadTestAsset(
	t *testing.T,
	router *gin.Engine,
	projectID, token, fileName string,
	content []byte,
) *projects_models.ProjectAsset {
	t.Helper()

	var asset projects_models.ProjectAsset
	resp := test_utils.MakeMultipartRequest(
		t,
		router,
		"/api/projects/"+projectID+"/assets",
		"Bearer "+token,
		"file",
		fileName,
		content,
		http.StatusCreated,
	)
	require.NoError(t, json.Unmarshal(resp.Body, &asset))

	return &asset
}
