package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type createSessionRequest struct {
	ID string `json:"id" validate:"omitempty,max=128,excludesall=/?#"`
}

type clickRequest struct {
	X *int `json:"x" validate:"required"`
	Y *int `json:"y" validate:"required"`
}

type armRequest struct {
	Role string `json:"role" validate:"required"`
}

// decodeBody decodes a JSON body into v and validates it.
// An empty body is accepted when allowEmpty is set.
func decodeBody(r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			return fmt.Errorf("invalid request body: %w", err)
		}
	}
	return validateStruct(v)
}

// validateStruct validates a struct based on its validation tags
func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, formatFieldError(e))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "excludesall":
		return fmt.Sprintf("%s must not contain any of %q", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
