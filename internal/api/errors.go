package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrSessionExpired matches any 401 that did not come from the login
	// endpoint.
	ErrSessionExpired = errors.New("session expired")
)

// Error is a non-2xx response from the API.
type Error struct {
	Status  int
	Path    string
	Message string
	// Errors holds server-side validation messages, if any.
	Errors []string
}

func (e *Error) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("%s (%d): %s: %s", e.Path, e.Status, e.Message, strings.Join(e.Errors, "; "))
	}
	return fmt.Sprintf("%s (%d): %s", e.Path, e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrSessionExpired && e.sessionExpired()
}

func (e *Error) sessionExpired() bool {
	return e.Status == http.StatusUnauthorized && e.Path != LoginPath
}

// errorBody covers the shapes the API uses for failures: {message},
// {title, errors: {field: [msg]}} and {errors: [msg]}. Keys match
// case-insensitively.
type errorBody struct {
	Message string          `json:"message"`
	Title   string          `json:"title"`
	Detail  string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

func newError(status int, path string, body []byte) *Error {
	e := &Error{
		Status: status,
		Path:   path,
	}

	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		e.Message = firstNonEmpty(eb.Message, eb.Detail, eb.Title)
		e.Errors = validationErrors(eb.Errors)
	} else if s := strings.TrimSpace(string(body)); s != "" && len(s) < 512 && !strings.HasPrefix(s, "<") {
		e.Message = s
	}

	if e.Message == "" && len(e.Errors) > 0 {
		e.Message = e.Errors[0]
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}

	return e
}

func validationErrors(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if json.Unmarshal(raw, &list) == nil {
		return list
	}

	var fields map[string][]string
	if json.Unmarshal(raw, &fields) != nil {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		list = append(list, fields[k]...)
	}
	return list
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// MessageOf returns the text to show a user for err, or fallback when err
// carries nothing presentable.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != http.StatusText(apiErr.Status) {
		return apiErr.Message
	}
	return fallback
}
