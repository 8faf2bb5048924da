package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid")

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every problem found by a check so the operator
// sees all of them at once instead of fixing them one run at a time.
type ValidationError struct {
	// Subject names what was validated, e.g. "config" or "input directories".
	Subject string
	Items   []FieldError
}

func (e ValidationError) Error() string {
	subject := e.Subject
	if subject == "" {
		subject = "validation"
	}
	if len(e.Items) == 0 {
		return subject + " failed"
	}

	var b strings.Builder
	b.WriteString(subject)
	b.WriteString(" failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e *ValidationError) Addf(field, format string, args ...any) {
	e.Add(field, fmt.Sprintf(format, args...))
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// OrNil returns e as an error when it holds at least one item.
func (e ValidationError) OrNil() error {
	if e.HasAny() {
		return e
	}
	return nil
}
