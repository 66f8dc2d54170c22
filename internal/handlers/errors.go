package handlers

import (
	"errors"

	"github.com/fatukunda/partytime/internal/auth"
	"github.com/fatukunda/partytime/internal/images"
	"github.com/fatukunda/partytime/internal/services"
	appErrors "github.com/fatukunda/partytime/pkg/errors"
)

// serviceError translates service layer sentinels into the HTTP error
// taxonomy. Anything unrecognised becomes an internal server error with the
// cause attached for logging but never serialized.
func serviceError(err error) *appErrors.AppError {
	switch {
	case err == nil:
		return nil

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNoAvatar),
		errors.Is(err, services.ErrPartyNotFound),
		errors.Is(err, services.ErrPhotoNotFound),
		errors.Is(err, services.ErrRequestNotFound):
		return appErrors.ErrNotFound

	case errors.Is(err, services.ErrInvalidCredentials):
		return appErrors.ErrInvalidCredentials

	case errors.Is(err, services.ErrEmailTaken):
		return appErrors.NewValidation("email is already registered")

	case errors.Is(err, services.ErrWeakPassword):
		return appErrors.NewValidation("password must be at least 6 characters and must not contain the word password")

	case errors.Is(err, services.ErrInvalidGender):
		return appErrors.NewValidation("gender must be one of: male, female, prefer not to say")

	case errors.Is(err, services.ErrInvalidCategory):
		return appErrors.NewValidation("category must be one of: house party, birthday party, movie night, other")

	case errors.Is(err, services.ErrInvalidStatus):
		return appErrors.NewValidation("status must be accepted or rejected")

	case errors.Is(err, services.ErrRequestPartyMissing):
		return appErrors.NewValidation("party does not exist")

	case errors.Is(err, services.ErrRequestAlreadyResolved):
		return appErrors.ErrConflict

	case errors.Is(err, auth.ErrTokenNotRecognised):
		return appErrors.ErrUnauthenticated

	case errors.Is(err, images.ErrUnsupportedFormat):
		return appErrors.NewValidation("only jpg, jpeg and png images are accepted")

	case errors.Is(err, images.ErrTooLarge):
		return appErrors.NewValidation("image exceeds the upload size limit")
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return appErrors.ErrInternalServer.WithInternal(err)
}
