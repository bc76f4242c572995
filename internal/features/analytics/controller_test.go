package analytics

import (
	"net/http"
	"testing"
	"time"

	users_dto "creativeflow/internal/features/users/dto"
	users_enums "creativeflow/internal/features/users/enums"
	users_testing "creativeflow/internal/features/users/testing"
	test_utils "creativeflow/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetEvents_WithoutAuth_ReturnsUnauthorized(t *testing.T) {
	router := createAnalyticsTestRouter()

	test_utils.MakeGetRequest(t, router, "/api/analytics/events", "", http.StatusUnauthorized)
}

func Test_GetEvents_AsUser_ReturnsOnlyOwnEvents(t *testing.T) {
	router := createAnalyticsTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleUser)
	other := users_testing.CreateTestUser(users_enums.UserRoleUser)

	projectID := uuid.New()
	writeEvent(user, EventProjectCreated, &projectID)
	writeEvent(other, EventProjectCreated, &projectID)

	var response GetEventsResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/analytics/events?projectId="+projectID.String(),
		"Bearer "+user.Token,
		http.StatusOK,
		&response,
	)

	require.Len(t, response.Events, 1)
	assert.Equal(t, int64(1), response.Total)
	assert.Equal(t, user.UserID, *response.Events[0].UserID)
	assert.Equal(t, user.Email, *response.Events[0].UserEmail)
	assert.Equal(t, "Test", response.Events[0].EventData["by"])
}

func Test_GetEvents_AsUserFilteringOtherUser_ReturnsForbidden(t *testing.T) {
	router := createAnalyticsTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleUser)
	other := users_testing.CreateTestUser(users_enums.UserRoleUser)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/analytics/events?userId="+other.UserID.String(),
		"Bearer "+user.Token,
		http.StatusForbidden,
	)
}

func Test_GetEvents_AsAdmin_FiltersByUserAndType(t *testing.T) {
	router := createAnalyticsTestRouter()
	admin := users_testing.CreateTestUser(users_enums.UserRoleAdmin)
	member := users_testing.CreateTestUser(users_enums.UserRoleUser)

	writeEvent(member, EventProjectCreated, nil)
	writeEvent(member, EventAssetUploaded, nil)
	writeEvent(member, EventAssetUploaded, nil)

	var response GetEventsResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/analytics/events?userId="+member.UserID.String()+"&eventType="+EventAssetUploaded,
		"Bearer "+admin.Token,
		http.StatusOK,
		&response,
	)

	assert.Len(t, response.Events, 2)
	assert.Equal(t, int64(2), response.Total)
	for _, event := range response.Events {
		assert.Equal(t, EventAssetUploaded, event.EventType)
	}
}

func Test_GetEvents_ReturnsNewestFirstWithPagination(t *testing.T) {
	router := createAnalyticsTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleUser)

	for i := 0; i < 3; i++ {
		writeEvent(user, EventProjectUpdated, nil)
		time.Sleep(2 * time.Millisecond)
	}

	var response GetEventsResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/analytics/events?limit=2",
		"Bearer "+user.Token,
		http.StatusOK,
		&response,
	)

	require.Len(t, response.Events, 2)
	assert.Equal(t, int64(3), response.Total)
	assert.Equal(t, 2, response.Limit)
	assert.False(t, response.Events[0].CreatedAt.Before(response.Events[1].CreatedAt))
}

func Test_GetEvents_WithInvalidProjectID_ReturnsBadRequest(t *testing.T) {
	router := createAnalyticsTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleUser)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/analytics/events?projectId=nope",
		"Bearer "+user.Token,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "Invalid project ID")
}

func Test_GetTimeline_CountsCurrentMonth(t *testing.T) {
	router := createAnalyticsTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleUser)

	writeEvent(user, EventProjectCreated, nil)
	writeEvent(user, EventProjectCreated, nil)
	writeEvent(user, EventProjectCompleted, nil)

	var response TimelineResponse
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/analytics/timeline?days=90",
		"Bearer "+user.Token,
		http.StatusOK,
		&response,
	)

	assert.Equal(t, 90, response.Days)
	require.NotEmpty(t, response.Points)

	last := response.Points[len(response.Points)-1]
	assert.Equal(t, time.Now().UTC().Format("2006-01"), last.Month)
	assert.Equal(t, 2, last.Created)
	assert.Equal(t, 1, last.Completed)
}

func Test_GetTimeline_WithUnsupportedRange_ReturnsBadRequest(t *testing.T) {
	router := createAnalyticsTestRouter()
	user := users_testing.CreateTestUser(users_enums.UserRoleUser)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/analytics/timeline?days=7",
		"Bearer "+user.Token,
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "Days must be one of 30, 90, 365")
}

func writeEvent(user *users_dto.AccessTokenResponseDTO, eventType string, projectID *uuid.UUID) {
	userID := user.UserID
	GetAnalyticsService().WriteEvent(eventType, &userID, projectID, map[string]any{"by": "Test"})
}

func createAnalyticsTestRouter() *gin.Engine {
	SetupDependencies()
	return users_testing.CreateTestRouter(GetAnalyticsController())
}
