package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"creativeflow/internal/features/analytics"
	"creativeflow/internal/features/contact"
	projects_dto "creativeflow/internal/features/projects/dto"
	users_dto "creativeflow/internal/features/users/dto"
	"creativeflow/internal/util/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu    sync.Mutex
	calls []string
	errs  map[string]error

	// when set, every call waits until barrier calls have started
	barrier *sync.WaitGroup

	eventsRequest *analytics.GetEventsRequest
	timelineDays  int
}

func (s *fakeSource) enter(name string) error {
	s.mu.Lock()
	s.calls = append(s.calls, name)
	err := s.errs[name]
	s.mu.Unlock()

	if s.barrier != nil {
		s.barrier.Done()

		released := make(chan struct{})
		go func() {
			s.barrier.Wait()
			close(released)
		}()

		select {
		case <-released:
		case <-time.After(2 * time.Second):
			return errors.New("panels were not loaded concurrently")
		}
	}

	return err
}

func (s *fakeSource) ListProjects(context.Context) (*projects_dto.ListProjectsResponseDTO, error) {
	if err := s.enter("projects"); err != nil {
		return nil, err
	}

	return &projects_dto.ListProjectsResponseDTO{Projects: []projects_dto.ProjectResponseDTO{{}}}, nil
}

func (s *fakeSource) GetStats(context.Context) (*analytics.ProjectStats, error) {
	if err := s.enter("stats"); err != nil {
		return nil, err
	}

	return &analytics.ProjectStats{TotalProjects: 3, ActiveProjects: 1, CompletedProjects: 1}, nil
}

func (s *fakeSource) GetEvents(_ context.Context, request *analytics.GetEventsRequest) (*analytics.GetEventsResponse, error) {
	s.mu.Lock()
	s.eventsRequest = request
	s.mu.Unlock()

	if err := s.enter("events"); err != nil {
		return nil, err
	}

	return &analytics.GetEventsResponse{}, nil
}

func (s *fakeSource) GetTimeline(_ context.Context, days int) (*analytics.TimelineResponse, error) {
	s.mu.Lock()
	s.timelineDays = days
	s.mu.Unlock()

	if err := s.enter("timeline"); err != nil {
		return nil, err
	}

	return &analytics.TimelineResponse{}, nil
}

func (s *fakeSource) ListUsers(context.Context, int, int) (*users_dto.ListUsersResponseDTO, error) {
	if err := s.enter("users"); err != nil {
		return nil, err
	}

	return &users_dto.ListUsersResponseDTO{Total: 2}, nil
}

func (s *fakeSource) ListContactSubmissions(
	context.Context,
	*contact.GetSubmissionsRequest,
) (*contact.GetSubmissionsResponse, error) {
	if err := s.enter("submissions"); err != nil {
		return nil, err
	}

	return &contact.GetSubmissionsResponse{Total: 1}, nil
}

type fakeNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *fakeNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.paths = append(n.paths, path)
}

func Test_LoadDashboard_WhenAllPanelsSucceed_PanelsAreLoaded(t *testing.T) {
	source := &fakeSource{}
	navigator := &fakeNavigator{}

	view := NewLoader(source, navigator).LoadDashboard(context.Background())

	assert.Equal(t, PanelLoaded, view.Projects.State)
	assert.Len(t, view.Projects.Data.Projects, 1)
	assert.Equal(t, PanelLoaded, view.Stats.State)
	assert.Equal(t, int64(3), view.Stats.Data.TotalProjects)
	assert.Empty(t, view.Redirect)
	assert.Empty(t, navigator.paths)
}

func Test_LoadDashboard_WhenOnePanelFails_OtherPanelStillLoads(t *testing.T) {
	source := &fakeSource{errs: map[string]error{"stats": fmt.Errorf("stats: %w", app_errors.ErrServer)}}
	navigator := &fakeNavigator{}

	view := NewLoader(source, navigator).LoadDashboard(context.Background())

	assert.Equal(t, PanelLoaded, view.Projects.State)
	assert.Equal(t, PanelFailed, view.Stats.State)
	assert.Nil(t, view.Stats.Data)
	assert.Equal(t, failedMessage, view.Stats.Error)
	assert.ErrorIs(t, view.Stats.Err(), app_errors.ErrServer)
	assert.Empty(t, navigator.paths)
}

func Test_LoadDashboard_WhenEveryPanelUnauthorized_RedirectsOnceToLogin(t *testing.T) {
	source := &fakeSource{errs: map[string]error{
		"projects": app_errors.ErrUnauthorized,
		"stats":    app_errors.ErrUnauthorized,
	}}
	navigator := &fakeNavigator{}

	view := NewLoader(source, navigator).LoadDashboard(context.Background())

	assert.Equal(t, LoginPath, view.Redirect)
	assert.Equal(t, []string{LoginPath}, navigator.paths)
	assert.Equal(t, "Unauthorized", view.Projects.Error)
}

func Test_LoadAdmin_WhenForbidden_RedirectsOnceToHome(t *testing.T) {
	source := &fakeSource{errs: map[string]error{
		"users":       app_errors.ErrForbidden,
		"submissions": app_errors.ErrForbidden,
	}}
	navigator := &fakeNavigator{}

	view := NewLoader(source, navigator).LoadAdmin(context.Background())

	assert.Equal(t, HomePath, view.Redirect)
	assert.Equal(t, []string{HomePath}, navigator.paths)
	assert.Equal(t, PanelFailed, view.Users.State)
	assert.Equal(t, PanelLoaded, view.Projects.State)
	assert.Equal(t, PanelFailed, view.Submissions.State)
}

func Test_LoadAdmin_WhenUnauthorizedAndForbidden_LoginWins(t *testing.T) {
	source := &fakeSource{errs: map[string]error{
		"users":    app_errors.ErrForbidden,
		"projects": app_errors.ErrUnauthorized,
	}}
	navigator := &fakeNavigator{}

	view := NewLoader(source, navigator).LoadAdmin(context.Background())

	assert.Equal(t, LoginPath, view.Redirect)
	assert.Equal(t, []string{LoginPath}, navigator.paths)
}

func Test_LoadAdmin_LoadsPanelsConcurrently(t *testing.T) {
	barrier := &sync.WaitGroup{}
	barrier.Add(3)
	source := &fakeSource{barrier: barrier}

	view := NewLoader(source, nil).LoadAdmin(context.Background())

	require.Equal(t, PanelLoaded, view.Users.State, view.Users.Error)
	assert.Equal(t, PanelLoaded, view.Projects.State)
	assert.Equal(t, PanelLoaded, view.Submissions.State)
	assert.ElementsMatch(t, []string{"users", "projects", "submissions"}, source.calls)
}

func Test_LoadAnalytics_PassesLimits(t *testing.T) {
	source := &fakeSource{}
	loader := NewLoader(source, &fakeNavigator{})
	loader.EventsLimit = 5
	loader.TimelineDays = 7

	view := loader.LoadAnalytics(context.Background())

	assert.Equal(t, PanelLoaded, view.Stats.State)
	assert.Equal(t, PanelLoaded, view.Events.State)
	assert.Equal(t, PanelLoaded, view.Timeline.State)
	require.NotNil(t, source.eventsRequest)
	assert.Equal(t, 5, source.eventsRequest.Limit)
	assert.Equal(t, 7, source.timelineDays)
}
