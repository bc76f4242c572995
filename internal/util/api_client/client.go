package api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"
	"time"

	"creativeflow/internal/features/analytics"
	"creativeflow/internal/features/contact"
	projects_dto "creativeflow/internal/features/projects/dto"
	projects_models "creativeflow/internal/features/projects/models"
	users_dto "creativeflow/internal/features/users/dto"

	"github.com/google/uuid"
	fastshot "github.com/opus-domini/fast-shot"
)

const (
	ProjectsKey = "/api/projects"
	StatsKey    = "/api/analytics/stats"

	defaultTimeout = 30 * time.Second
)

// Client calls the CreativeFlow API with a bearer token. GET responses go
// through the query cache until a caller invalidates their key.
type Client struct {
	http  fastshot.ClientHttpMethods
	cache *QueryCache
}

func NewClient(baseURL, token string, cache *QueryCache) *Client {
	if cache == nil {
		cache = NewQueryCache(0)
	}

	builder := fastshot.NewClient(baseURL)
	if token != "" {
		builder.Auth().BearerToken(token)
	}

	httpClient := builder.
		Config().SetTimeout(defaultTimeout).
		Header().Add("Accept", "application/json").
		Build()

	return &Client{http: httpClient, cache: cache}
}

func (c *Client) Cache() *QueryCache {
	return c.cache
}

func (c *Client) Invalidate(keys ...string) {
	c.cache.Invalidate(keys...)
}

func (c *Client) GetCurrentUser(ctx context.Context) (*users_dto.UserProfileResponseDTO, error) {
	return getJSON[users_dto.UserProfileResponseDTO](ctx, c, "/api/auth/user", nil)
}

func (c *Client) ListProjects(ctx context.Context) (*projects_dto.ListProjectsResponseDTO, error) {
	return getJSON[projects_dto.ListProjectsResponseDTO](ctx, c, ProjectsKey, nil)
}

func (c *Client) GetProject(ctx context.Context, projectID uuid.UUID) (*projects_dto.ProjectResponseDTO, error) {
	return getJSON[projects_dto.ProjectResponseDTO](ctx, c, projectPath(projectID), nil)
}

func (c *Client) CreateProject(
	ctx context.Context,
	request *projects_dto.CreateProjectRequestDTO,
) (*projects_dto.ProjectResponseDTO, error) {
	return decode[projects_dto.ProjectResponseDTO](readResponse(
		c.http.POST(ProjectsKey).
			Context().Set(ctx).
			Header().Add("Content-Type", "application/json").
			Body().AsJSON(request).
			Send(),
	))
}

func (c *Client) UpdateProject(
	ctx context.Context,
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
) (*projects_dto.ProjectResponseDTO, error) {
	return decode[projects_dto.ProjectResponseDTO](readResponse(
		c.http.PUT(projectPath(projectID)).
			Context().Set(ctx).
			Header().Add("Content-Type", "application/json").
			Body().AsJSON(request).
			Send(),
	))
}

func (c *Client) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	_, err := readResponse(c.http.DELETE(projectPath(projectID)).Context().Set(ctx).Send())
	return err
}

func (c *Client) GetMembers(ctx context.Context, projectID uuid.UUID) (*projects_dto.GetMembersResponseDTO, error) {
	return getJSON[projects_dto.GetMembersResponseDTO](ctx, c, projectPath(projectID)+"/members", nil)
}

func (c *Client) AddMember(
	ctx context.Context,
	projectID uuid.UUID,
	request *projects_dto.AddMemberRequestDTO,
) (*projects_dto.ProjectMemberResponseDTO, error) {
	return decode[projects_dto.ProjectMemberResponseDTO](readResponse(
		c.http.POST(projectPath(projectID)+"/members").
			Context().Set(ctx).
			Header().Add("Content-Type", "application/json").
			Body().AsJSON(request).
			Send(),
	))
}

func (c *Client) ListAssets(ctx context.Context, projectID uuid.UUID) (*projects_dto.ListAssetsResponseDTO, error) {
	return getJSON[projects_dto.ListAssetsResponseDTO](ctx, c, projectPath(projectID)+"/assets", nil)
}

func (c *Client) UploadAsset(
	ctx context.Context,
	projectID uuid.UUID,
	fileName string,
	content io.Reader,
) (*projects_models.ProjectAsset, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read asset content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	return decode[projects_models.ProjectAsset](readResponse(
		c.http.POST(projectPath(projectID)+"/assets").
			Context().Set(ctx).
			Header().Add("Content-Type", writer.FormDataContentType()).
			Body().AsReader(body).
			Send(),
	))
}

func (c *Client) GetStats(ctx context.Context) (*analytics.ProjectStats, error) {
	return getJSON[analytics.ProjectStats](ctx, c, StatsKey, nil)
}

func (c *Client) GetEvents(ctx context.Context, request *analytics.GetEventsRequest) (*analytics.GetEventsResponse, error) {
	params := url.Values{}
	if request != nil {
		setInt(params, "limit", request.Limit)
		setInt(params, "offset", request.Offset)
		setString(params, "userId", request.UserID)
		setString(params, "projectId", request.ProjectID)
		setString(params, "eventType", request.EventType)
	}

	return getJSON[analytics.GetEventsResponse](ctx, c, "/api/analytics/events", params)
}

func (c *Client) GetTimeline(ctx context.Context, days int) (*analytics.TimelineResponse, error) {
	params := url.Values{}
	setInt(params, "days", days)

	return getJSON[analytics.TimelineResponse](ctx, c, "/api/analytics/timeline", params)
}

func (c *Client) ListUsers(ctx context.Context, limit, offset int) (*users_dto.ListUsersResponseDTO, error) {
	params := url.Values{}
	setInt(params, "limit", limit)
	setInt(params, "offset", offset)

	return getJSON[users_dto.ListUsersResponseDTO](ctx, c, "/api/admin/users", params)
}

func (c *Client) ListContactSubmissions(
	ctx context.Context,
	request *contact.GetSubmissionsRequest,
) (*contact.GetSubmissionsResponse, error) {
	params := url.Values{}
	if request != nil {
		setInt(params, "limit", request.Limit)
		setInt(params, "offset", request.Offset)
		setString(params, "status", request.Status)
	}

	return getJSON[contact.GetSubmissionsResponse](ctx, c, "/api/contact", params)
}

func (c *Client) SubmitContact(
	ctx context.Context,
	request *contact.CreateSubmissionRequest,
) (*contact.ContactSubmission, error) {
	return decode[contact.ContactSubmission](readResponse(
		c.http.POST("/api/contact").
			Context().Set(ctx).
			Header().Add("Content-Type", "application/json").
			Body().AsJSON(request).
			Send(),
	))
}

// getJSON serves path from the query cache, keyed by the path and its
// encoded query.
func getJSON[T any](ctx context.Context, c *Client, path string, params url.Values) (*T, error) {
	key := path
	if len(params) > 0 {
		key += "?" + params.Encode()
	}

	body, err := c.cache.Load(key, func() ([]byte, error) {
		request := c.http.GET(path).Context().Set(ctx)
		for name := range params {
			request = request.Query().AddParam(name, params.Get(name))
		}

		return readResponse(request.Send())
	})
	if err != nil {
		return nil, err
	}

	return decode[T](body, nil)
}

func readResponse(resp *fastshot.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body().Close()

	body, err := resp.Body().AsBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.Status().IsError() {
		return nil, mapStatusError(resp.Status().Code(), body)
	}

	return body, nil
}

func decode[T any](body []byte, err error) (*T, error) {
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}

func projectPath(projectID uuid.UUID) string {
	return ProjectsKey + "/" + projectID.String()
}

func setInt(params url.Values, name string, value int) {
	if value != 0 {
		params.Set(name, strconv.Itoa(value))
	}
}

func setString(params url.Values, name, value string) {
	if value != "" {
		params.Set(name, value)
	}
}
