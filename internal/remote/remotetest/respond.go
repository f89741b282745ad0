// Copyright (c) 2026 CodeJourney. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package remotetest

import (
	"encoding/json"
	"net/http"

	"github.com/taibuivan/codejourney/internal/platform/apperr"
	"github.com/taibuivan/codejourney/internal/platform/constants"
	"github.com/taibuivan/codejourney/internal/platform/validate"
)

// errorEnvelope is the failure shape of the real backend.
type errorEnvelope struct {
	Error string `json:"error"`
}

// messageEnvelope is what the backend uses for 403s and deletions.
type messageEnvelope struct {
	Message string `json:"message"`
}

func writeJSON(writer http.ResponseWriter, status int, payload any) {
	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(payload)
}

func writeError(writer http.ResponseWriter, err *apperr.AppError) {
	status := err.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	// The backend answers ownership violations with {message}.
	if status == http.StatusForbidden {
		writeJSON(writer, status, messageEnvelope{Message: err.Message})
		return
	}
	writeJSON(writer, status, errorEnvelope{Error: err.Message})
}

func decode(request *http.Request, target any) *apperr.AppError {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}
