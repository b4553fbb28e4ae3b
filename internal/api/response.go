// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/postwise/internal/logging"
	"github.com/tomtom215/postwise/internal/validation"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Response is the JSON envelope used by most endpoints.
type Response struct {
	Status  string                  `json:"status"`
	Message string                  `json:"message,omitempty"`
	Data    any                     `json:"data,omitempty"`
	Detail  string                  `json:"detail,omitempty"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// sanitizeLogValue escapes control characters so client-supplied values
// cannot forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON writes body as JSON with the given status.
func respondJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func respondSuccess(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, &Response{Status: StatusSuccess, Data: data})
}

// respondError writes an error envelope. err, when set, is logged but not
// exposed beyond detail.
func respondError(w http.ResponseWriter, r *http.Request, status int, detail string, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Int("status", status).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}
	respondJSON(w, status, &Response{Status: StatusError, Detail: detail})
}

// decodeJSON reads a size-limited JSON body into dst and validates it.
// It writes the 400 response itself and reports whether to continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondJSON(w, http.StatusRequestEntityTooLarge, &Response{Status: StatusError, Detail: "request body too large"})
			return false
		}
		respondJSON(w, http.StatusBadRequest, &Response{Status: StatusError, Detail: "failed to read request body"})
		return false
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		respondJSON(w, http.StatusBadRequest, &Response{Status: StatusError, Detail: "request body is empty"})
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		respondJSON(w, http.StatusBadRequest, &Response{Status: StatusError, Detail: "invalid JSON body"})
		return false
	}

	if err := validation.ValidateStruct(dst); err != nil {
		resp := &Response{Status: StatusError, Detail: "invalid request"}
		var ve *validation.RequestValidationError
		if errors.As(err, &ve) {
			resp.Errors = ve.Fields
		}
		respondJSON(w, http.StatusBadRequest, resp)
		return false
	}
	return true
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
