package models

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorConstructors(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")

	cases := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
		wantPublic string
	}{
		{"unauthorized", NewUnauthorizedError(cause, "Invalid token"), CodeUnauthorized, http.StatusUnauthorized, "Invalid token"},
		{"bad request", NewBadRequestError(cause, "Error creating the prediction"), CodeBadRequest, http.StatusBadRequest, "Error creating the prediction"},
		{"conflict", NewConflictError(cause, "Error creating a new user"), CodeConflict, http.StatusConflict, "Error creating a new user"},
		{"not found", NewNotFoundError(cause, "Prediction not found"), CodeNotFound, http.StatusNotFound, "Prediction not found"},
		{"internal", NewInternalError(cause, DefaultPublicMessage), CodeInternal, http.StatusInternalServerError, DefaultPublicMessage},
		{"validation", NewValidationError(cause), CodeValidation, http.StatusBadRequest, "Wrong data"},
		{"image", NewImageProcessingError(cause, "Couldn't compress the image"), CodeImage, http.StatusInternalServerError, "Couldn't compress the image"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.wantCode {
				t.Fatalf("code: got %s, want %s", tc.err.Code, tc.wantCode)
			}
			if tc.err.StatusCode != tc.wantStatus {
				t.Fatalf("status: got %d, want %d", tc.err.StatusCode, tc.wantStatus)
			}
			if tc.err.PublicMessage != tc.wantPublic {
				t.Fatalf("public message: got %q, want %q", tc.err.PublicMessage, tc.wantPublic)
			}
			if !errors.Is(tc.err, cause) {
				t.Fatal("cause must be reachable through Unwrap")
			}
		})
	}
}

func TestAsAppError(t *testing.T) {
	t.Parallel()

	appErr := NewNotFoundError(errors.New("gone"), "Prediction not found")

	got, ok := AsAppError(appErr)
	if !ok || got != appErr {
		t.Fatal("direct AppError not recognized")
	}

	wrapped := fmt.Errorf("handler: %w", appErr)
	got, ok = AsAppError(wrapped)
	if !ok || got != appErr {
		t.Fatal("wrapped AppError not recognized")
	}

	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Fatal("plain error misclassified as AppError")
	}
}
