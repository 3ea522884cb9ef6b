package validator

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/NCHRD-2025/training-service/internal/models"
)

// Validator handles struct and business rule validation.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with all custom rules registered.
func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerBusinessRules()

	return v
}

// Validate validates struct tags for any struct.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// allowedTransitions is the forward path of the assignment workflow.
// canceled is reachable from any non-terminal status and handled separately.
var allowedTransitions = map[models.AssignmentStatus]models.AssignmentStatus{
	models.AssignmentPending:    models.AssignmentPrinted,
	models.AssignmentPrinted:    models.AssignmentInProgress,
	models.AssignmentInProgress: models.AssignmentSubmitted,
	models.AssignmentSubmitted:  models.AssignmentDelivered,
}

// ValidateAssignmentTransition checks one workflow step.
func (v *Validator) ValidateAssignmentTransition(current, next models.AssignmentStatus) ValidationErrors {
	if next == models.AssignmentCanceled {
		if current.Terminal() {
			return ValidationErrors{{
				Field:   "status",
				Message: fmt.Sprintf("cannot cancel from %s", current),
				Value:   next,
				Rule:    "status_transition",
			}}
		}
		return nil
	}

	if allowedTransitions[current] != next {
		return ValidationErrors{{
			Field:   "status",
			Message: fmt.Sprintf("cannot transition from %s to %s", current, next),
			Value:   next,
			Rule:    "status_transition",
		}}
	}

	return nil
}

// ValidateEvaluationSubmit validates the graded outcome beyond struct tags.
func (v *Validator) ValidateEvaluationSubmit(result models.EvaluationResult, repeatDate *time.Time) ValidationErrors {
	var errors ValidationErrors

	if result == models.ResultNotCompetent && repeatDate == nil {
		errors = append(errors, ValidationError{
			Field:   "repeat_date",
			Message: "is required when result is not_competent",
			Rule:    "business_logic",
		})
	}

	return errors
}

// ValidateDateRange checks that from does not come after to.
func (v *Validator) ValidateDateRange(from, to time.Time) ValidationErrors {
	if from.After(to) {
		return ValidationErrors{{
			Field:   "date_range",
			Message: "from date must not be after to date",
			Rule:    "business_logic",
		}}
	}
	return nil
}

func (v *Validator) registerBusinessRules() {
	// Sub-scores are graded 0-10
	v.validate.RegisterValidation("score_range", func(fl validator.FieldLevel) bool {
		score := fl.Field().Int()
		return score >= 0 && score <= 10
	})

	// Egyptian national ids are 14 digits
	v.validate.RegisterValidation("national_id", func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		if len(id) != 14 {
			return false
		}
		for _, r := range id {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
}
