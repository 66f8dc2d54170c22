package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestErrorIncludesInternal(t *testing.T) {
	internal := stdErrors.New("boom")
	err := Wrap(internal, "failed")

	if err.Error() != "failed: boom" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}

func TestWithInternalCopies(t *testing.T) {
	base := New("TEST", "test", 400)
	with := base.WithInternal(stdErrors.New("oops"))

	if with == base {
		t.Fatal("expected WithInternal to return a copy")
	}

	if base.Internal != nil {
		t.Fatal("expected original error to remain unchanged")
	}

	if with.Internal == nil {
		t.Fatal("expected internal error to be set")
	}
}

func TestWithMessageCopies(t *testing.T) {
	with := ErrInvalidUpdateFields.WithMessage("unknown field: host_id")

	if with == ErrInvalidUpdateFields {
		t.Fatal("expected WithMessage to return a copy")
	}
	if with.Code != ErrInvalidUpdateFields.Code {
		t.Fatalf("expected code to carry over, got %s", with.Code)
	}
	if with.Message != "unknown field: host_id" {
		t.Fatalf("unexpected message: %s", with.Message)
	}
}

func TestFromError(t *testing.T) {
	appErr := ErrNotFound
	if out := FromError(appErr); out != appErr {
		t.Fatal("expected FromError to return the same AppError instance")
	}

	raw := stdErrors.New("raw")
	out := FromError(raw)
	if out.Code != ErrInternalServer.Code {
		t.Fatalf("expected internal server code, got %s", out.Code)
	}
	if out.Internal == nil {
		t.Fatal("expected internal error to be attached")
	}
}

func TestStatusCodes(t *testing.T) {
	cases := map[*AppError]int{
		ErrValidation:         http.StatusBadRequest,
		ErrInvalidCredentials: http.StatusBadRequest,
		ErrInvalidUpdateFields: http.StatusBadRequest,
		ErrUnauthenticated:    http.StatusUnauthorized,
		ErrNotFound:           http.StatusNotFound,
		ErrConflict:           http.StatusConflict,
		ErrInternalServer:     http.StatusInternalServerError,
	}

	for err, want := range cases {
		if err.StatusCode != want {
			t.Fatalf("%s: expected status %d, got %d", err.Code, want, err.StatusCode)
		}
	}
}

func TestNewValidation(t *testing.T) {
	err := NewValidation("category must be one of the supported values")
	if err.Code != ErrValidation.Code {
		t.Fatalf("expected %s, got %s", ErrValidation.Code, err.Code)
	}
	if err.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", err.StatusCode)
	}
}
