package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	projects_dto "creativeflow/internal/features/projects/dto"
	projects_enums "creativeflow/internal/features/projects/enums"
	"creativeflow/internal/util/app_errors"
	"creativeflow/internal/util/logger"
)

const (
	DashboardPath = "/dashboard"
	LoginPath     = "/api/login"

	SubmitErrorMessage = "Failed to create project. Please try again."
)

// InvalidatedQueries are the cached reads a created project makes stale.
var InvalidatedQueries = []string{"/api/projects", "/api/analytics/stats"}

var (
	ErrNotAtReview      = errors.New("project can only be submitted from the review step")
	ErrAlreadySubmitted = errors.New("project was already submitted")
	ErrUnknownField     = errors.New("unknown wizard field")
	ErrAssetIndex       = errors.New("asset index out of range")
)

type ProjectCreator interface {
	CreateProject(
		ctx context.Context,
		request *projects_dto.CreateProjectRequestDTO,
	) (*projects_dto.ProjectResponseDTO, error)
}

type QueryInvalidator interface {
	Invalidate(keys ...string)
}

type Navigator interface {
	Navigate(path string)
}

// Wizard walks the four creation steps and submits one project. It is not
// safe for concurrent use.
type Wizard struct {
	state       State
	creator     ProjectCreator
	invalidator QueryInvalidator
	navigator   Navigator
	logger      *slog.Logger
}

func New(creator ProjectCreator, invalidator QueryInvalidator, navigator Navigator) *Wizard {
	return Restore(NewState(), creator, invalidator, navigator)
}

// Restore continues from a previously saved state.
func Restore(state State, creator ProjectCreator, invalidator QueryInvalidator, navigator Navigator) *Wizard {
	if state.Step < StepBrandInformation || state.Step > StepReview {
		state.Step = StepBrandInformation
	}

	state = cloneState(state)

	return &Wizard{
		state:       state,
		creator:     creator,
		invalidator: invalidator,
		navigator:   navigator,
		logger:      logger.GetLogger(),
	}
}

// State returns a copy that callers may keep or serialize.
func (w *Wizard) State() State {
	return cloneState(w.state)
}

func (w *Wizard) Step() Step {
	return w.state.Step
}

func (w *Wizard) Errors() map[string]string {
	return cloneErrors(w.state.Errors)
}

// Set updates one form field and clears that field's error only.
func (w *Wizard) Set(field Field, value string) error {
	data := &w.state.Data

	switch field {
	case FieldBrandName:
		data.BrandName = value
	case FieldIndustry:
		data.Industry = value
	case FieldBrandDescription:
		data.BrandDescription = value
	case FieldName:
		data.Name = value
	case FieldObjectives:
		data.Objectives = value
	case FieldTargetAudience:
		data.TargetAudience = value
	case FieldStartDate:
		data.StartDate = value
	case FieldDeadline:
		data.Deadline = value
	case FieldStatus:
		data.Status = projects_enums.ProjectStatus(value)
	case FieldProgress:
		progress, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("progress must be a whole number: %w", err)
		}
		data.Progress = progress
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	delete(w.state.Errors, string(field))

	return nil
}

// Next validates the current step and advances. At the review step it
// submits the project.
func (w *Wizard) Next(ctx context.Context) error {
	if w.state.Step == StepReview {
		_, err := w.Submit(ctx)
		return err
	}

	stepErrors := w.validateStep(w.state.Step)
	w.replaceErrors(stepFields(w.state.Step), stepErrors)

	if len(stepErrors) > 0 {
		return app_errors.NewValidationError(cloneErrors(stepErrors))
	}

	w.state.Step++

	return nil
}

func (w *Wizard) Previous() {
	if w.state.Step > StepBrandInformation {
		w.state.Step--
	}
}

func (w *Wizard) AddAssets(assets ...AssetDescriptor) {
	w.state.Assets = append(w.state.Assets, assets...)
}

// RemoveAsset drops the asset at index keeping the order of the others.
func (w *Wizard) RemoveAsset(index int) error {
	if index < 0 || index >= len(w.state.Assets) {
		return fmt.Errorf("%w: %d", ErrAssetIndex, index)
	}

	w.state.Assets = append(w.state.Assets[:index:index], w.state.Assets[index+1:]...)

	return nil
}

// Submit sends the form data, without the asset list, as one creation
// request. Server field errors move the wizard back to the first step
// showing a failing field.
func (w *Wizard) Submit(ctx context.Context) (*projects_dto.ProjectResponseDTO, error) {
	if w.state.Step != StepReview {
		return nil, ErrNotAtReview
	}
	if w.state.Submitted {
		return nil, ErrAlreadySubmitted
	}

	request := w.buildRequest()

	reviewErrors := validateRequest(request)
	w.replaceErrors(allFields(), reviewErrors)
	if len(reviewErrors) > 0 {
		return nil, app_errors.NewValidationError(cloneErrors(reviewErrors))
	}

	w.state.SubmitError = ""

	project, err := w.creator.CreateProject(ctx, request)
	if err != nil {
		return nil, w.handleSubmitError(err)
	}

	w.state.Submitted = true
	w.invalidator.Invalidate(InvalidatedQueries...)
	w.navigator.Navigate(DashboardPath)

	return project, nil
}

func (w *Wizard) handleSubmitError(err error) error {
	if errors.Is(err, app_errors.ErrUnauthorized) {
		w.navigator.Navigate(LoginPath)
		return err
	}

	if validationErr, ok := app_errors.AsValidationError(err); ok {
		w.replaceErrors(allFields(), validationErr.Fields)
		w.state.Step = firstStepOf(validationErr.Fields)
		return err
	}

	w.logger.Error("failed to create project from wizard", "error", err)
	w.state.SubmitError = SubmitErrorMessage

	return err
}

func (w *Wizard) validateStep(step Step) map[string]string {
	data := w.state.Data
	stepErrors := map[string]string{}

	switch step {
	case StepBrandInformation:
		if strings.TrimSpace(data.BrandName) == "" {
			stepErrors[string(FieldBrandName)] = "Brand name is required"
		}
		if strings.TrimSpace(data.Industry) == "" {
			stepErrors[string(FieldIndustry)] = "Industry is required"
		}
	case StepProjectDetails:
		if strings.TrimSpace(data.Name) == "" {
			stepErrors[string(FieldName)] = "Project name is required"
		}
	case StepAssetUpload:
		// assets are optional
	case StepReview:
		return validateRequest(w.buildRequest())
	}

	return stepErrors
}

// validateRequest runs the full creation rules, trimming request in place.
func validateRequest(request *projects_dto.CreateProjectRequestDTO) map[string]string {
	err := request.Validate()
	if err == nil {
		return map[string]string{}
	}

	if validationErr, ok := app_errors.AsValidationError(err); ok {
		return cloneErrors(validationErr.Fields)
	}

	return map[string]string{"form": "Invalid project data"}
}

// replaceErrors recomputes the errors of fields and leaves the others alone.
func (w *Wizard) replaceErrors(fields []Field, newErrors map[string]string) {
	if w.state.Errors == nil {
		w.state.Errors = map[string]string{}
	}

	for _, field := range fields {
		delete(w.state.Errors, string(field))
	}
	for field, message := range newErrors {
		w.state.Errors[field] = message
	}
}

func (w *Wizard) buildRequest() *projects_dto.CreateProjectRequestDTO {
	data := w.state.Data
	status := data.Status
	progress := data.Progress

	return &projects_dto.CreateProjectRequestDTO{
		Name:             data.Name,
		BrandName:        data.BrandName,
		Industry:         data.Industry,
		BrandDescription: optional(data.BrandDescription),
		Objectives:       optional(data.Objectives),
		TargetAudience:   optional(data.TargetAudience),
		StartDate:        optional(data.StartDate),
		Deadline:         optional(data.Deadline),
		Status:           &status,
		Progress:         &progress,
	}
}

func stepFields(step Step) []Field {
	fields := make([]Field, 0)
	for field, fieldStep := range fieldSteps {
		if fieldStep == step {
			fields = append(fields, field)
		}
	}

	return fields
}

func allFields() []Field {
	fields := make([]Field, 0, len(fieldSteps))
	for field := range fieldSteps {
		fields = append(fields, field)
	}

	return fields
}

func firstStepOf(fieldErrors map[string]string) Step {
	first := StepReview
	for field := range fieldErrors {
		if step, ok := fieldSteps[Field(field)]; ok && step < first {
			first = step
		}
	}

	return first
}

func optional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	return &value
}

func cloneState(state State) State {
	state.Errors = cloneErrors(state.Errors)

	assets := make([]AssetDescriptor, len(state.Assets))
	copy(assets, state.Assets)
	state.Assets = assets

	return state
}

func cloneErrors(errs map[string]string) map[string]string {
	cloned := make(map[string]string, len(errs))
	for field, message := range errs {
		cloned[field] = message
	}

	return cloned
}
