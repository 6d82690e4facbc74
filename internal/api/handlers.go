package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"mentorhub/backend/internal/auth"
	"mentorhub/backend/internal/common"
	"mentorhub/backend/internal/constants"
	"mentorhub/backend/internal/logging"
	"mentorhub/backend/internal/services"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// statusFor maps a lifecycle error kind to its HTTP status
func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindAuthenticationRequired:
		return http.StatusUnauthorized
	case services.KindAuthorizationDenied:
		return http.StatusForbidden
	case services.KindValidationFailed:
		return http.StatusBadRequest
	case services.KindDuplicateRequest, services.KindConflict:
		return http.StatusConflict
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindStoreUnavailable, services.KindAssignmentFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err using its kind; store details stay in the log.
func respondServiceError(w http.ResponseWriter, r *http.Request, initTime time.Time, err error) {
	var le *services.LifecycleError
	if !errors.As(err, &le) {
		logging.Error("Unclassified handler error", "request_id", auth.RequestID(r.Context()), "error", err)
		common.RespondError(w, initTime, nil, "Internal server error", http.StatusInternalServerError)
		return
	}

	status := statusFor(le.Kind)
	if status >= http.StatusInternalServerError {
		logging.Error("Request failed",
			"request_id", auth.RequestID(r.Context()),
			"principal_id", auth.PrincipalID(r.Context()),
			"kind", le.Kind,
			"error", err,
		)
	}
	common.RespondErrorCode(w, initTime, string(le.Kind), le.PublicMessage(), status)
}

// decodeBody reads a JSON request body into dst
func decodeBody(w http.ResponseWriter, r *http.Request, initTime time.Time, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		msg := "Invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "Request body is required"
		}
		common.RespondErrorCode(w, initTime, constants.ErrCodeValidationFailed, msg, http.StatusBadRequest)
		return false
	}
	return true
}

func parseTrack(w http.ResponseWriter, initTime time.Time, raw string) (constants.Track, bool) {
	track := constants.Track(raw)
	if !track.Valid() {
		common.RespondErrorCode(w, initTime, constants.ErrCodeValidationFailed,
			fmt.Sprintf("unknown track %q", raw), http.StatusBadRequest)
		return "", false
	}
	return track, true
}
