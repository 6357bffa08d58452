// Package wizard drives multi-step forms: validate the current step, move forward or back,
// and submit once the last step passes.
package wizard

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/pkg/validator"
)

// Status is the submission state of a wizard.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

var (
	ErrNoSteps        = errors.New("wizard has no steps")
	ErrNotRetryable   = errors.New("wizard is not in error state")
	ErrAlreadyDone    = errors.New("wizard already submitted")
	ErrStepOutOfRange = errors.New("step out of range")
)

// Step validates one page of the form.
type Step[D any] struct {
	Name     string
	Validate func(D) validator.ValidationErrors
}

// SubmitFunc sends the completed draft.
type SubmitFunc[D any] func(ctx context.Context, draft D) error

// Wizard is not safe for concurrent use; it belongs to one form session.
type Wizard[D any] struct {
	steps     []Step[D]
	submit    SubmitFunc[D]
	draft     D
	current   int
	status    Status
	errors    validator.ValidationErrors
	submitErr error
}

func New[D any](steps []Step[D], draft D, submit SubmitFunc[D]) (*Wizard[D], error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	return &Wizard[D]{
		steps:  steps,
		submit: submit,
		draft:  draft,
		status: StatusIdle,
	}, nil
}

func (w *Wizard[D]) Current() int              { return w.current }
func (w *Wizard[D]) StepName() string          { return w.steps[w.current].Name }
func (w *Wizard[D]) Len() int                  { return len(w.steps) }
func (w *Wizard[D]) Status() Status            { return w.status }
func (w *Wizard[D]) Draft() D                  { return w.draft }
func (w *Wizard[D]) SubmitErr() error          { return w.submitErr }
func (w *Wizard[D]) IsLast() bool              { return w.current == len(w.steps)-1 }
func (w *Wizard[D]) Errors() map[string]string { return w.errors.ToMap() }

// Update edits the draft. Errors on fields that changed are left for the next validation.
func (w *Wizard[D]) Update(fn func(*D)) {
	fn(&w.draft)
}

// Next validates the current step. On success it advances, or submits when on the last
// step. It reports whether the wizard moved past the current step; validation problems are
// available from Errors.
func (w *Wizard[D]) Next(ctx context.Context) (bool, error) {
	if w.status == StatusSuccess {
		return false, ErrAlreadyDone
	}
	w.errors = w.steps[w.current].Validate(w.draft)
	if len(w.errors) > 0 {
		return false, nil
	}
	if !w.IsLast() {
		w.current++
		return true, nil
	}
	return true, w.doSubmit(ctx)
}

// Back returns to the previous step without validating.
func (w *Wizard[D]) Back() bool {
	if w.current == 0 || w.status == StatusSubmitting || w.status == StatusSuccess {
		return false
	}
	w.current--
	w.errors = nil
	if w.status == StatusError {
		w.status = StatusIdle
		w.submitErr = nil
	}
	return true
}

// Retry re-sends the draft after a failed submission.
func (w *Wizard[D]) Retry(ctx context.Context) error {
	if w.status != StatusError {
		return ErrNotRetryable
	}
	return w.doSubmit(ctx)
}

// Run walks every step from the current one, stopping at the first step with errors, and
// submits when all pass. It returns the step's validation errors or the submission error.
func (w *Wizard[D]) Run(ctx context.Context) error {
	for {
		moved, err := w.Next(ctx)
		if err != nil {
			return err
		}
		if !moved {
			return w.errors
		}
		if w.status == StatusSuccess {
			return nil
		}
	}
}

func (w *Wizard[D]) doSubmit(ctx context.Context) error {
	w.status = StatusSubmitting
	if err := w.submit(ctx, w.draft); err != nil {
		w.status = StatusError
		w.submitErr = err
		return err
	}
	w.status = StatusSuccess
	w.submitErr = nil
	return nil
}

// ValidateStep runs a single step's rules without any wizard state, for per-step checks
// coming from the client.
func ValidateStep[D any](steps []Step[D], index int, draft D) (validator.ValidationErrors, error) {
	if index < 0 || index >= len(steps) {
		return nil, ErrStepOutOfRange
	}
	return steps[index].Validate(draft), nil
}

// StepResult is the outcome of checking one step, as reported to the client.
type StepResult struct {
	Step     int               `json:"step"`
	StepName string            `json:"step_name"`
	Valid    bool              `json:"valid"`
	Errors   map[string]string `json:"errors,omitempty"`
	NextStep *int              `json:"next_step,omitempty"`
	Submit   bool              `json:"submit"`
}

// Check validates one step and describes where the form goes next.
func Check[D any](steps []Step[D], index int, draft D) (StepResult, error) {
	errs, err := ValidateStep(steps, index, draft)
	if err != nil {
		return StepResult{}, err
	}
	result := StepResult{
		Step:     index,
		StepName: steps[index].Name,
		Valid:    len(errs) == 0,
	}
	if !result.Valid {
		result.Errors = errs.ToMap()
		return result, nil
	}
	if index == len(steps)-1 {
		result.Submit = true
		return result, nil
	}
	next := index + 1
	result.NextStep = &next
	return result, nil
}
