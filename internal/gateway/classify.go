package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tasktrack/webapp/internal/core/domain"
)

// Classify maps a non-2xx, non-recoverable response to the single
// notification shown to the user and the category error returned to the
// calling screen. It never panics and never swallows: every input yields
// both a notification and an error.
func Classify(status int, body []byte) (domain.Notification, error) {
	var msg string
	var err error

	switch {
	case status >= http.StatusInternalServerError:
		msg = "Server error. Please check if the backend is running."
		err = fmt.Errorf("%w: status %d", domain.ErrServerFault, status)
	case status == http.StatusForbidden:
		msg = "Permission denied. You don't have access to this resource."
		err = fmt.Errorf("%w: status %d", domain.ErrForbidden, status)
	case status == http.StatusNotFound:
		msg = "Resource not found."
		err = fmt.Errorf("%w: status %d", domain.ErrNotFound, status)
	case status == http.StatusUnauthorized:
		msg = "Authentication required."
		if detail, ok := payloadMessage(body); ok {
			msg = detail
		}
		err = fmt.Errorf("%w: status %d", domain.ErrUnauthorized, status)
	default:
		if detail, ok := payloadMessage(body); ok {
			msg = detail
			err = &domain.UpstreamError{Status: status, Message: detail}
			break
		}
		if fields, ok := fieldErrors(body); ok {
			ve := &domain.ValidationError{Fields: fields}
			msg = ve.Message()
			err = ve
			break
		}
		msg = fmt.Sprintf("Request failed with status %d.", status)
		err = &domain.UpstreamError{Status: status, Message: msg}
	}

	return domain.Notification{Kind: domain.NotifyError, Message: msg}, err
}

// payloadMessage extracts the single-message shapes the API uses:
// {"detail": "..."} (DRF) or {"error": "..."}.
func payloadMessage(body []byte) (string, bool) {
	var envelope struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if json.Unmarshal(body, &envelope) != nil {
		return "", false
	}
	if envelope.Detail != "" {
		return envelope.Detail, true
	}
	if envelope.Error != "" {
		return envelope.Error, true
	}
	return "", false
}

// fieldErrors interprets the body as a DRF field-error map: an object whose
// values are a string or an array of strings per field.
func fieldErrors(body []byte) (map[string][]string, bool) {
	var raw map[string]any
	if json.Unmarshal(body, &raw) != nil || len(raw) == 0 {
		return nil, false
	}

	fields := make(map[string][]string, len(raw))
	for key, val := range raw {
		switch v := val.(type) {
		case string:
			fields[key] = []string{v}
		case []any:
			var msgs []string
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, false
				}
				msgs = append(msgs, s)
			}
			if len(msgs) == 0 {
				return nil, false
			}
			fields[key] = msgs
		default:
			return nil, false
		}
	}
	return fields, true
}
