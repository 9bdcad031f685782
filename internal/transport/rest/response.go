package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/relatosdepapel/bookstore-backend/internal/domain"
	"github.com/relatosdepapel/bookstore-backend/pkg/ctxutil"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// conflictText is the resource-specific wording of a 409 answer.
type conflictText struct {
	short  string
	detail string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, short, message string) {
	writeJSON(w, status, ErrorResponse{Error: short, Message: message})
}

// writeServiceError translates a service error into its HTTP answer.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, conflict conflictText) {
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, conflict.short, conflict.detail)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "Invalid data", validationMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found", err.Error())
	default:
		log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "Internal error", "unexpected server error")
	}
}

func validationMessage(err error) string {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// decodeJSON reads a single JSON object from the request body into dst.
// Malformed or oversized bodies come back as validation errors.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return domain.NewValidationError("body", fmt.Sprintf("exceeds %d bytes", maxErr.Limit))
		}
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.NewValidationError("body", "must not be empty")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("body", decodeMessage(err))
	}
	if dec.More() {
		return domain.NewValidationError("body", "must contain a single JSON object")
	}
	return nil
}

func decodeMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("field %s must be %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	}
	return err.Error()
}

// decodeFields reads a PATCH body. JSON null values survive as nil map
// entries so setters can clear nullable fields.
func decodeFields(r *http.Request) (map[string]any, error) {
	var fields map[string]any
	if err := decodeJSON(r, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, domain.NewValidationError("body", "must be a JSON object")
	}
	return fields, nil
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", fmt.Sprintf("must be a positive integer, got %q", raw))
	}
	return id, nil
}

// query wraps url.Values with typed optional lookups. A parameter with an
// empty value counts as absent for typed lookups.
type query struct {
	values url.Values
	errs   []domain.FieldError
}

func newQuery(r *http.Request) *query {
	return &query{values: r.URL.Query()}
}

func (q *query) optString(name string) *string {
	v, ok := q.values[name]
	if !ok || len(v) == 0 {
		return nil
	}
	s := v[0]
	return &s
}

func (q *query) raw(name string) (string, bool) {
	s := q.optString(name)
	if s == nil || strings.TrimSpace(*s) == "" {
		return "", false
	}
	return strings.TrimSpace(*s), true
}

func (q *query) optInt(name string) *int {
	s, ok := q.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		msg := fmt.Sprintf("must be an integer, got %q", s)
		if errors.Is(err, strconv.ErrRange) {
			msg = fmt.Sprintf("out of range: %s", s)
		}
		q.errs = append(q.errs, domain.FieldError{Field: name, Message: msg})
		return nil
	}
	i := int(n)
	return &i
}

func (q *query) optInt64(name string) *int64 {
	s, ok := q.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: name, Message: fmt.Sprintf("must be an integer, got %q", s)})
		return nil
	}
	return &n
}

func (q *query) optBool(name string) *bool {
	s, ok := q.raw(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		q.errs = append(q.errs, domain.FieldError{Field: name, Message: fmt.Sprintf("must be true or false, got %q", s)})
		return nil
	}
	return &b
}

func (q *query) err() error {
	if len(q.errs) == 0 {
		return nil
	}
	return domain.NewValidationErrors(q.errs)
}
