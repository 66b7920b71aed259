package httpclient

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON decodes the response body into a generic JSON value. An empty body parses to nil.
func ParseJSON(resp *Response) (any, error) {
	if len(strings.TrimSpace(string(resp.Body))) == 0 {
		return nil, nil
	}

	var result any
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return result, nil
}

// ErrorMessage extracts the "message" field from an error body, or "" when the body
// is not a JSON object carrying one.
func ErrorMessage(resp *Response) string {
	if resp == nil || len(resp.Body) == 0 {
		return ""
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return ""
	}
	return body.Message
}

// IsSuccessStatus returns true if the status code indicates success
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
