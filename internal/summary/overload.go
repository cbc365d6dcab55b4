package summary

import (
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

// IsOverloaded reports whether err signals a temporarily unavailable
// backend. The message check matches what both SDKs put in their error
// strings; the typed checks catch a 503 whose text says nothing useful.
func IsOverloaded(err error) bool {
	if err == nil {
		return false
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusServiceUnavailable {
		return true
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusServiceUnavailable {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusServiceUnavailable {
		return true
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	return strings.Contains(msg, "503") ||
		strings.Contains(lower, "overloaded") ||
		strings.Contains(lower, "unavailable")
}
