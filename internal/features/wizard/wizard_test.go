package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	projects_dto "creativeflow/internal/features/projects/dto"
	projects_enums "creativeflow/internal/features/projects/enums"
	"creativeflow/internal/util/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCreator struct {
	requests []*projects_dto.CreateProjectRequestDTO
	err      error
}

func (c *fakeCreator) CreateProject(
	_ context.Context,
	request *projects_dto.CreateProjectRequestDTO,
) (*projects_dto.ProjectResponseDTO, error) {
	c.requests = append(c.requests, request)
	if c.err != nil {
		return nil, c.err
	}

	response := &projects_dto.ProjectResponseDTO{}
	response.Name = request.Name

	return response, nil
}

type fakeInvalidator struct {
	keys []string
}

func (i *fakeInvalidator) Invalidate(keys ...string) {
	i.keys = append(i.keys, keys...)
}

type fakeNavigator struct {
	paths []string
}

func (n *fakeNavigator) Navigate(path string) {
	n.paths = append(n.paths, path)
}

func Test_Next_WhenBrandStepEmpty_ReportsBothFields(t *testing.T) {
	w, _, _, _ := newTestWizard()

	err := w.Next(context.Background())

	validationErr, ok := app_errors.AsValidationError(err)
	require.True(t, ok)
	expected := map[string]string{
		"brandName": "Brand name is required",
		"industry":  "Industry is required",
	}
	assert.Equal(t, expected, validationErr.Fields)
	assert.Equal(t, expected, w.Errors())
	assert.Equal(t, StepBrandInformation, w.Step())
}

func Test_Next_WhenBrandStepFilled_MovesToDetailsWithoutErrors(t *testing.T) {
	w, _, _, _ := newTestWizard()
	require.NoError(t, w.Set(FieldBrandName, "Acme"))
	require.NoError(t, w.Set(FieldIndustry, "Technology"))

	require.NoError(t, w.Next(context.Background()))

	assert.Equal(t, StepProjectDetails, w.Step())
	assert.Empty(t, w.Errors())
}

func Test_Next_WhenBrandNameIsBlank_StaysOnBrandStep(t *testing.T) {
	w, _, _, _ := newTestWizard()
	require.NoError(t, w.Set(FieldBrandName, "   "))
	require.NoError(t, w.Set(FieldIndustry, "Retail"))

	require.Error(t, w.Next(context.Background()))

	assert.Equal(t, map[string]string{"brandName": "Brand name is required"}, w.Errors())
	assert.Equal(t, StepBrandInformation, w.Step())
}

func Test_Next_WhenDetailsStepHasNoName_ReportsName(t *testing.T) {
	w, _, _, _ := newTestWizard()
	fillBrand(t, w)
	require.NoError(t, w.Next(context.Background()))

	require.Error(t, w.Next(context.Background()))

	assert.Equal(t, map[string]string{"name": "Project name is required"}, w.Errors())
	assert.Equal(t, StepProjectDetails, w.Step())
}

func Test_Next_KeepsErrorsOfOtherSteps(t *testing.T) {
	state := NewState()
	state.Data.BrandName = "Acme"
	state.Data.Industry = "Technology"
	state.Errors = map[string]string{"deadline": "Deadline cannot be before the start date"}
	w := Restore(state, &fakeCreator{}, &fakeInvalidator{}, &fakeNavigator{})

	require.NoError(t, w.Next(context.Background()))

	assert.Equal(t, map[string]string{"deadline": "Deadline cannot be before the start date"}, w.Errors())
}

func Test_Set_ClearsOnlyEditedFieldError(t *testing.T) {
	w, _, _, _ := newTestWizard()
	require.Error(t, w.Next(context.Background()))

	require.NoError(t, w.Set(FieldBrandName, "Acme"))

	assert.Equal(t, map[string]string{"industry": "Industry is required"}, w.Errors())
}

func Test_Set_WithUnknownField_ReturnsError(t *testing.T) {
	w, _, _, _ := newTestWizard()

	err := w.Set(Field("budget"), "100")

	assert.ErrorIs(t, err, ErrUnknownField)
}

func Test_Set_WithNonNumericProgress_KeepsPreviousValue(t *testing.T) {
	w, _, _, _ := newTestWizard()
	require.NoError(t, w.Set(FieldProgress, "40"))

	require.Error(t, w.Set(FieldProgress, "forty"))

	assert.Equal(t, 40, w.State().Data.Progress)
}

func Test_Previous_NeverGoesBelowFirstStep(t *testing.T) {
	w, _, _, _ := newTestWizard()
	fillBrand(t, w)
	require.NoError(t, w.Next(context.Background()))

	w.Previous()
	w.Previous()

	assert.Equal(t, StepBrandInformation, w.Step())
}

func Test_RemoveAsset_KeepsOrderOfRemainingAssets(t *testing.T) {
	w, _, _, _ := newTestWizard()
	w.AddAssets(
		AssetDescriptor{Name: "logo.png", Size: 10, ContentType: "image/png"},
		AssetDescriptor{Name: "brief.pdf", Size: 20, ContentType: "application/pdf"},
		AssetDescriptor{Name: "moodboard.jpg", Size: 30, ContentType: "image/jpeg"},
	)

	require.NoError(t, w.RemoveAsset(1))

	assets := w.State().Assets
	require.Len(t, assets, 2)
	assert.Equal(t, "logo.png", assets[0].Name)
	assert.Equal(t, "moodboard.jpg", assets[1].Name)

	assert.ErrorIs(t, w.RemoveAsset(2), ErrAssetIndex)
	assert.ErrorIs(t, w.RemoveAsset(-1), ErrAssetIndex)
}

func Test_State_RoundTripsThroughJSON(t *testing.T) {
	w, _, _, _ := newTestWizard()
	fillBrand(t, w)
	require.NoError(t, w.Next(context.Background()))
	require.NoError(t, w.Set(FieldName, "Spring launch"))
	w.AddAssets(AssetDescriptor{Name: "logo.png", Size: 10, ContentType: "image/png"})

	data, err := json.Marshal(w.State())
	require.NoError(t, err)

	var restored State
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, w.State(), Restore(restored, nil, nil, nil).State())
}

func Test_State_ReturnsCopy(t *testing.T) {
	w, _, _, _ := newTestWizard()
	w.AddAssets(AssetDescriptor{Name: "logo.png"})

	snapshot := w.State()
	snapshot.Assets[0].Name = "changed.png"
	snapshot.Errors["brandName"] = "changed"

	assert.Equal(t, "logo.png", w.State().Assets[0].Name)
	assert.Empty(t, w.Errors())
}

func Test_Submit_WhenNotAtReview_ReturnsError(t *testing.T) {
	w, creator, _, _ := newTestWizard()

	_, err := w.Submit(context.Background())

	assert.ErrorIs(t, err, ErrNotAtReview)
	assert.Empty(t, creator.requests)
}

func Test_Submit_WhenCreated_InvalidatesQueriesAndNavigatesToDashboard(t *testing.T) {
	w, creator, invalidator, navigator := newTestWizard()
	walkToReview(t, w)
	w.AddAssets(AssetDescriptor{Name: "logo.png", Size: 10, ContentType: "image/png"})

	require.NoError(t, w.Next(context.Background()))

	require.Len(t, creator.requests, 1)
	request := creator.requests[0]
	assert.Equal(t, "Spring launch", request.Name)
	assert.Equal(t, "Acme", request.BrandName)
	assert.Equal(t, "Technology", request.Industry)
	require.NotNil(t, request.Status)
	assert.Equal(t, projects_enums.ProjectStatusPlanning, *request.Status)
	assert.Nil(t, request.Deadline)

	assert.ElementsMatch(t, []string{"/api/projects", "/api/analytics/stats"}, invalidator.keys)
	assert.Equal(t, []string{DashboardPath}, navigator.paths)
	assert.True(t, w.State().Submitted)

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Len(t, creator.requests, 1)
}

func Test_Submit_WhenReviewValidationFails_DoesNotCallServer(t *testing.T) {
	w, creator, _, _ := newTestWizard()
	walkToReview(t, w)
	require.NoError(t, w.Set(FieldStartDate, "2026-05-10"))
	require.NoError(t, w.Set(FieldDeadline, "2026-05-01"))

	_, err := w.Submit(context.Background())

	validationErr, ok := app_errors.AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, validationErr.Fields, "deadline")
	assert.Contains(t, w.Errors(), "deadline")
	assert.Equal(t, StepReview, w.Step())
	assert.Empty(t, creator.requests)
}

func Test_Submit_WhenProgressOutOfRange_ReportsProgress(t *testing.T) {
	w, creator, _, _ := newTestWizard()
	walkToReview(t, w)
	require.NoError(t, w.Set(FieldProgress, "150"))

	_, err := w.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Progress must be between 0 and 100", w.Errors()["progress"])
	assert.Empty(t, creator.requests)
}

func Test_Submit_WhenUnauthorized_NavigatesToLogin(t *testing.T) {
	w, creator, invalidator, navigator := newTestWizard()
	creator.err = fmt.Errorf("create project: %w", app_errors.ErrUnauthorized)
	walkToReview(t, w)

	_, err := w.Submit(context.Background())

	assert.ErrorIs(t, err, app_errors.ErrUnauthorized)
	assert.Equal(t, []string{LoginPath}, navigator.paths)
	assert.Empty(t, invalidator.keys)
	assert.False(t, w.State().Submitted)
}

func Test_Submit_WhenServerRejectsField_ReturnsToOwningStep(t *testing.T) {
	w, creator, _, navigator := newTestWizard()
	creator.err = app_errors.NewValidationError(map[string]string{
		"name":     "Project name must be at most 255 characters",
		"progress": "Progress must be between 0 and 100",
	})
	walkToReview(t, w)

	_, err := w.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, StepProjectDetails, w.Step())
	assert.Equal(t, "Project name must be at most 255 characters", w.Errors()["name"])
	assert.Equal(t, "Progress must be between 0 and 100", w.Errors()["progress"])
	assert.Empty(t, navigator.paths)
}

func Test_Submit_WhenServerFails_SetsRetryableError(t *testing.T) {
	w, creator, invalidator, navigator := newTestWizard()
	creator.err = errors.New("connection reset")
	walkToReview(t, w)

	_, err := w.Submit(context.Background())

	require.Error(t, err)
	state := w.State()
	assert.Equal(t, SubmitErrorMessage, state.SubmitError)
	assert.Equal(t, StepReview, state.Step)
	assert.False(t, state.Submitted)
	assert.Empty(t, navigator.paths)
	assert.Empty(t, invalidator.keys)

	creator.err = nil
	_, err = w.Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, w.State().SubmitError)
	assert.Len(t, creator.requests, 2)
}

func newTestWizard() (*Wizard, *fakeCreator, *fakeInvalidator, *fakeNavigator) {
	creator := &fakeCreator{}
	invalidator := &fakeInvalidator{}
	navigator := &fakeNavigator{}

	return New(creator, invalidator, navigator), creator, invalidator, navigator
}

func fillBrand(t *testing.T, w *Wizard) {
	t.Helper()

	require.NoError(t, w.Set(FieldBrandName, "Acme"))
	require.NoError(t, w.Set(FieldIndustry, "Technology"))
}

func walkToReview(t *testing.T, w *Wizard) {
	t.Helper()

	fillBrand(t, w)
	require.NoError(t, w.Next(context.Background()))
	require.NoError(t, w.Set(FieldName, "Spring launch"))
	require.NoError(t, w.Next(context.Background()))
	require.NoError(t, w.Next(context.Background()))
	require.Equal(t, StepReview, w.Step())
}
