package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fatukunda/partytime/internal/services"
	appErrors "github.com/fatukunda/partytime/pkg/errors"
	"github.com/fatukunda/partytime/pkg/response"
	appValidator "github.com/fatukunda/partytime/pkg/validator"
)

// bindAndValidate binds the JSON payload into dest and runs struct validation rules.
// When validation fails, an error response is automatically written and false is returned.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid JSON payload"))
		return false
	}

	if err := appValidator.ValidateStruct(dest); err != nil {
		response.Error(c, appErrors.NewValidation(formatValidationError(err)))
		return false
	}

	return true
}

// bindUpdatePayload reads the request body once, checks every key against the
// allow-list and then binds the same bytes into dest. Unknown keys reject the
// whole update before anything is validated or written.
func bindUpdatePayload[T any](c *gin.Context, allowed services.AllowedFields, dest *T) bool {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, appErrors.NewBadRequest("unable to read request body"))
		return false
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid JSON payload"))
		return false
	}

	if err := allowed.Validate(payload); err != nil {
		response.Error(c, err)
		return false
	}

	if err := json.NewDecoder(bytes.NewReader(body)).Decode(dest); err != nil {
		response.Error(c, appErrors.NewBadRequest("invalid JSON payload"))
		return false
	}

	if err := appValidator.ValidateStruct(dest); err != nil {
		response.Error(c, appErrors.NewValidation(formatValidationError(err)))
		return false
	}

	return true
}

func formatValidationError(err error) string {
	if err == nil {
		return "invalid request payload"
	}

	if ve, ok := err.(appValidator.ValidationErrors); ok {
		if len(ve) == 0 {
			return "invalid request payload"
		}

		messages := make([]string, 0, len(ve))
		for _, failure := range ve {
			field := prettifyFieldName(failure.Field)
			switch failure.Tag {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", field))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, failure.Param))
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, failure.Param))
			case "alpha":
				messages = append(messages, fmt.Sprintf("%s must contain letters only", field))
			case "e164":
				messages = append(messages, fmt.Sprintf("%s must be a valid phone number", field))
			case "datetime":
				messages = append(messages, fmt.Sprintf("%s must be a date in the form YYYY-MM-DD", field))
			case "gender":
				messages = append(messages, fmt.Sprintf("%s must be one of male, female or prefer not to say", field))
			case "party_category":
				messages = append(messages, fmt.Sprintf("%s must be one of house party, birthday party, movie night or other", field))
			case "password":
				messages = append(messages, fmt.Sprintf("%s must be at least 6 characters and must not contain the word password", field))
			default:
				if failure.Param != "" {
					messages = append(messages, fmt.Sprintf("%s failed validation: %s=%s", field, failure.Tag, failure.Param))
				} else {
					messages = append(messages, fmt.Sprintf("%s failed validation: %s", field, failure.Tag))
				}
			}
		}
		return strings.Join(messages, "; ")
	}

	return "invalid request payload"
}

func prettifyFieldName(name string) string {
	if name == "" {
		return "field"
	}
	name = strings.ReplaceAll(name, "_", " ")
	return strings.ToLower(name)
}
