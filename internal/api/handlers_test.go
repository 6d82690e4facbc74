package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/models/dtos"
	"mentorhub/backend/internal/services"
)

func TestStatusFor(t *testing.T) {
	tests := map[services.ErrorKind]int{
		services.KindAuthenticationRequired: http.StatusUnauthorized,
		services.KindAuthorizationDenied:    http.StatusForbidden,
		services.KindValidationFailed:       http.StatusBadRequest,
		services.KindDuplicateRequest:       http.StatusConflict,
		services.KindNotFound:               http.StatusNotFound,
		services.KindStoreUnavailable:       http.StatusServiceUnavailable,
		services.KindAssignmentFailed:       http.StatusServiceUnavailable,
		services.KindConflict:               http.StatusConflict,
		services.ErrorKind("SOMETHING"):     http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := statusFor(kind); got != want {
			t.Errorf("statusFor(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestRespondServiceError_HidesStoreDetails(t *testing.T) {
	storeFailure := &services.LifecycleError{
		Kind: services.KindStoreUnavailable,
		Err:  errors.New("dial tcp 10.0.0.5:5432: connection refused"),
	}
	wrapped := fmt.Errorf("loading roadmap: %w", storeFailure)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/roadmaps/1", nil)
	respondServiceError(rec, req, time.Now(), wrapped)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503, got %d", rec.Code)
	}

	var body dtos.APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Code != constants.ErrCodeStoreUnavailable {
		t.Errorf("Expected STORE_UNAVAILABLE code, got %q", body.Code)
	}
	if strings.Contains(body.Message, "10.0.0.5") {
		t.Errorf("Store details leaked into message: %q", body.Message)
	}
}

func TestRespondServiceError_ForeignError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	respondServiceError(rec, req, time.Now(), errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
}

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"valid", `{"comment":"hi"}`, true},
		{"empty", ``, false},
		{"malformed", `{"comment":`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst dtos.CommentRequest
			if got := decodeBody(rec, req, time.Now(), &dst); got != tt.ok {
				t.Fatalf("decodeBody = %v, want %v", got, tt.ok)
			}
			if !tt.ok && rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}
