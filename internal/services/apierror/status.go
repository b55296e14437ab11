package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// StatusError is returned for any non-200 answer from a remote service.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []string
}

func (e *StatusError) Error() string {
	prefix := fmt.Sprintf("Code [%d]", e.StatusCode)
	if e.Code != "" && e.Message != "" {
		return fmt.Sprintf("%s - %s: %s", prefix, e.Code, e.Message)
	}
	return fmt.Sprintf("%s - %s", prefix, strings.Join(e.Details, ", "))
}

// Check returns nil for 200 and a *StatusError built from the body otherwise.
func Check(status int, body []byte) error {
	if status == http.StatusOK {
		return nil
	}

	serr := &StatusError{StatusCode: status}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		if raw := strings.TrimSpace(string(body)); raw != "" {
			serr.Details = []string{raw}
		} else {
			serr.Details = []string{http.StatusText(status)}
		}
		return serr
	}

	code, hasCode := fields["Code"]
	msg, hasMsg := fields["Message"]
	if hasCode && hasMsg {
		serr.Code = fmt.Sprint(code)
		serr.Message = fmt.Sprint(msg)
		return serr
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		serr.Details = append(serr.Details, fmt.Sprint(fields[k]))
	}
	return serr
}
