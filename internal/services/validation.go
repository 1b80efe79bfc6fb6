package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrValidation = errors.New("validation failed")

// validate checks the same `binding` tags gin uses when binding requests,
// so inputs built outside a handler get the same checks.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// validateInput runs struct validation and wraps failures in ErrValidation
func validateInput(input interface{}) error {
	if err := validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// newID returns a short random record id
func newID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// nowMillis returns the clock reading in epoch milliseconds
func nowMillis(clock func() time.Time) int64 {
	return clock().UnixMilli()
}
