package calculator

import (
	"fmt"
	"strings"
)

// Reason identifies which validation rule rejected a measurement.
type Reason string

const (
	ReasonAgeOutOfRange          Reason = "age_out_of_range"
	ReasonWeightOutOfRange       Reason = "weight_out_of_range"
	ReasonHeightFeetOutOfRange   Reason = "height_feet_out_of_range"
	ReasonHeightInchesOutOfRange Reason = "height_inches_out_of_range"
	ReasonUnknownGender          Reason = "unknown_gender"
	ReasonUnknownActivityLevel   Reason = "unknown_activity_level"
)

// Sentinels for errors.Is. They match any ValidationError with the same Reason.
var (
	ErrAgeOutOfRange          = &ValidationError{Reason: ReasonAgeOutOfRange}
	ErrWeightOutOfRange       = &ValidationError{Reason: ReasonWeightOutOfRange}
	ErrHeightFeetOutOfRange   = &ValidationError{Reason: ReasonHeightFeetOutOfRange}
	ErrHeightInchesOutOfRange = &ValidationError{Reason: ReasonHeightInchesOutOfRange}
	ErrUnknownGender          = &ValidationError{Reason: ReasonUnknownGender}
	ErrUnknownActivityLevel   = &ValidationError{Reason: ReasonUnknownActivityLevel}
)

// ValidationError is returned when a measurement is rejected before any
// arithmetic runs. Message is safe to show to the caller as is.
type ValidationError struct {
	Reason  Reason
	Field   string
	Value   any
	Message string
	Choices []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

func rangeError(reason Reason, field string, value any, msg string) *ValidationError {
	return &ValidationError{Reason: reason, Field: field, Value: value, Message: msg}
}

func choiceError(reason Reason, field, what, value string, choices []string, sep string) *ValidationError {
	return &ValidationError{
		Reason:  reason,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("Invalid %s: %q. Choose from: %s", what, value, strings.Join(choices, sep)),
		Choices: choices,
	}
}
