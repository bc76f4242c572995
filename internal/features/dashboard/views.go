package dashboard

import (
	"context"
	"errors"
	"sync"

	"creativeflow/internal/features/analytics"
	"creativeflow/internal/features/contact"
	projects_dto "creativeflow/internal/features/projects/dto"
	users_dto "creativeflow/internal/features/users/dto"
	"creativeflow/internal/util/app_errors"
)

const (
	LoginPath = "/api/login"
	HomePath  = "/"

	failedMessage = "Failed to load data. Please try again."
)

type PanelState string

const (
	PanelLoading PanelState = "loading"
	PanelLoaded  PanelState = "loaded"
	PanelFailed  PanelState = "failed"
)

// Panel is one independently loaded part of a view.
type Panel[T any] struct {
	State PanelState `json:"state"`
	Data  *T         `json:"data,omitempty"`
	Error string     `json:"error,omitempty"`

	err error
}

func (p *Panel[T]) Err() error {
	return p.err
}

// DataSource is the read side of the API client.
type DataSource interface {
	ListProjects(ctx context.Context) (*projects_dto.ListProjectsResponseDTO, error)
	GetStats(ctx context.Context) (*analytics.ProjectStats, error)
	GetEvents(ctx context.Context, request *analytics.GetEventsRequest) (*analytics.GetEventsResponse, error)
	GetTimeline(ctx context.Context, days int) (*analytics.TimelineResponse, error)
	ListUsers(ctx context.Context, limit, offset int) (*users_dto.ListUsersResponseDTO, error)
	ListContactSubmissions(
		ctx context.Context,
		request *contact.GetSubmissionsRequest,
	) (*contact.GetSubmissionsResponse, error)
}

type Navigator interface {
	Navigate(path string)
}

type DashboardView struct {
	Projects Panel[projects_dto.ListProjectsResponseDTO] `json:"projects"`
	Stats    Panel[analytics.ProjectStats]               `json:"stats"`
	Redirect string                                      `json:"redirect,omitempty"`
}

type AnalyticsView struct {
	Stats    Panel[analytics.ProjectStats]      `json:"stats"`
	Events   Panel[analytics.GetEventsResponse] `json:"events"`
	Timeline Panel[analytics.TimelineResponse]  `json:"timeline"`
	Redirect string                             `json:"redirect,omitempty"`
}

type AdminView struct {
	Users       Panel[users_dto.ListUsersResponseDTO]       `json:"users"`
	Projects    Panel[projects_dto.ListProjectsResponseDTO] `json:"projects"`
	Submissions Panel[contact.GetSubmissionsResponse]       `json:"submissions"`
	Redirect    string                                      `json:"redirect,omitempty"`
}

// loadGroup runs panel loads concurrently and remembers every failure so
// the redirect is decided once all panels settle.
type loadGroup struct {
	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

func load[T any](ctx context.Context, group *loadGroup, panel *Panel[T], fetch func(context.Context) (*T, error)) {
	panel.State = PanelLoading

	group.wg.Add(1)
	go func() {
		defer group.wg.Done()

		data, err := fetch(ctx)
		if err != nil {
			panel.State = PanelFailed
			panel.Error = panelErrorMessage(err)
			panel.err = err

			group.mu.Lock()
			group.errs = append(group.errs, err)
			group.mu.Unlock()

			return
		}

		panel.State = PanelLoaded
		panel.Data = data
	}()
}

// wait returns the redirect target. Unauthorized wins over forbidden.
func (g *loadGroup) wait() string {
	g.wg.Wait()

	redirect := ""
	for _, err := range g.errs {
		switch {
		case errors.Is(err, app_errors.ErrUnauthorized):
			return LoginPath
		case errors.Is(err, app_errors.ErrForbidden):
			redirect = HomePath
		}
	}

	return redirect
}

func panelErrorMessage(err error) string {
	switch {
	case errors.Is(err, app_errors.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, app_errors.ErrForbidden):
		return "Forbidden"
	default:
		return failedMessage
	}
}
