package dashboard

import (
	"context"
	"log/slog"

	"creativeflow/internal/features/analytics"
	"creativeflow/internal/features/contact"
	projects_dto "creativeflow/internal/features/projects/dto"
	users_dto "creativeflow/internal/features/users/dto"
	"creativeflow/internal/util/logger"
)

const (
	defaultEventsLimit  = 20
	defaultTimelineDays = 30
	defaultAdminLimit   = 50
)

// Loader fills the dashboard, analytics and admin views. Each view issues
// at most one redirect no matter how many of its panels were refused.
type Loader struct {
	source    DataSource
	navigator Navigator
	logger    *slog.Logger

	EventsLimit  int
	TimelineDays int
	AdminLimit   int
}

func NewLoader(source DataSource, navigator Navigator) *Loader {
	return &Loader{
		source:       source,
		navigator:    navigator,
		logger:       logger.GetLogger(),
		EventsLimit:  defaultEventsLimit,
		TimelineDays: defaultTimelineDays,
		AdminLimit:   defaultAdminLimit,
	}
}

func (l *Loader) LoadDashboard(ctx context.Context) *DashboardView {
	view := &DashboardView{}
	group := &loadGroup{}

	load(ctx, group, &view.Projects, l.source.ListProjects)
	load(ctx, group, &view.Stats, l.source.GetStats)

	view.Redirect = l.finish("dashboard", group)

	return view
}

func (l *Loader) LoadAnalytics(ctx context.Context) *AnalyticsView {
	view := &AnalyticsView{}
	group := &loadGroup{}

	load(ctx, group, &view.Stats, l.source.GetStats)
	load(ctx, group, &view.Events, func(ctx context.Context) (*analytics.GetEventsResponse, error) {
		return l.source.GetEvents(ctx, &analytics.GetEventsRequest{Limit: l.EventsLimit})
	})
	load(ctx, group, &view.Timeline, func(ctx context.Context) (*analytics.TimelineResponse, error) {
		return l.source.GetTimeline(ctx, l.TimelineDays)
	})

	view.Redirect = l.finish("analytics", group)

	return view
}

func (l *Loader) LoadAdmin(ctx context.Context) *AdminView {
	view := &AdminView{}
	group := &loadGroup{}

	load(ctx, group, &view.Users, func(ctx context.Context) (*users_dto.ListUsersResponseDTO, error) {
		return l.source.ListUsers(ctx, l.AdminLimit, 0)
	})
	load(ctx, group, &view.Projects, func(ctx context.Context) (*projects_dto.ListProjectsResponseDTO, error) {
		return l.source.ListProjects(ctx)
	})
	load(ctx, group, &view.Submissions, func(ctx context.Context) (*contact.GetSubmissionsResponse, error) {
		return l.source.ListContactSubmissions(ctx, &contact.GetSubmissionsRequest{Limit: l.AdminLimit})
	})

	view.Redirect = l.finish("admin", group)

	return view
}

func (l *Loader) finish(viewName string, group *loadGroup) string {
	redirect := group.wait()

	for _, err := range group.errs {
		if panelErrorMessage(err) == failedMessage {
			l.logger.Error("failed to load view panel", "view", viewName, "error", err)
		}
	}

	if redirect != "" && l.navigator != nil {
		l.navigator.Navigate(redirect)
	}

	return redirect
}
