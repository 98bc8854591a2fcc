package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v80/github"

	llmhttp "github.com/bkyoung/storysmith/internal/adapter/llm/http"
)

const providerName = "github"

// mapAPIError converts go-github failures into typed errors so the command
// layer can report authentication, rate-limit, and validation problems
// distinctly.
func mapAPIError(owner, repo string, resp *github.Response, err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeRateLimit,
			Message:    rateErr.Message,
			StatusCode: statusCode(resp, http.StatusForbidden),
			Retryable:  true,
			Provider:   providerName,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeRateLimit,
			Message:    abuseErr.Message,
			StatusCode: statusCode(resp, http.StatusForbidden),
			Retryable:  true,
			Provider:   providerName,
		}
	}

	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) {
		return mapErrorResponse(owner, repo, apiErr)
	}

	// Anything else is a transport-level failure: DNS, refused connection,
	// or the client timeout firing before a response arrived.
	return llmhttp.NewTimeoutError(providerName, err.Error())
}

// mapErrorResponse translates a GitHub API error body by status code,
// mirroring how the completion clients classify their upstreams.
func mapErrorResponse(owner, repo string, apiErr *github.ErrorResponse) *llmhttp.Error {
	status := 0
	if apiErr.Response != nil {
		status = apiErr.Response.StatusCode
	}
	message := errorMessage(apiErr)

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeAuthentication,
			Message:    message,
			StatusCode: status,
			Retryable:  false,
			Provider:   providerName,
		}

	case http.StatusNotFound:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeInvalidRequest,
			Message:    fmt.Sprintf("%s (check that %s/%s exists and the token can see it)", message, owner, repo),
			StatusCode: status,
			Retryable:  false,
			Provider:   providerName,
		}

	case http.StatusGone:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeInvalidRequest,
			Message:    fmt.Sprintf("%s (issues are disabled for %s/%s)", message, owner, repo),
			StatusCode: status,
			Retryable:  false,
			Provider:   providerName,
		}

	case http.StatusUnprocessableEntity:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeInvalidRequest,
			Message:    message,
			StatusCode: status,
			Retryable:  false,
			Provider:   providerName,
		}

	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeServiceUnavailable,
			Message:    message,
			StatusCode: status,
			Retryable:  true,
			Provider:   providerName,
		}

	default:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeUnknown,
			Message:    message,
			StatusCode: status,
			Retryable:  false,
			Provider:   providerName,
		}
	}
}

// errorMessage flattens GitHub's message plus any validation details.
// A 422 for a bad assignee, for example, becomes
// "Validation Failed: assignees: invalid".
func errorMessage(apiErr *github.ErrorResponse) string {
	message := apiErr.Message
	if message == "" {
		message = "request rejected"
	}

	if len(apiErr.Errors) == 0 {
		return message
	}

	var details []string
	for _, e := range apiErr.Errors {
		switch {
		case e.Message != "":
			details = append(details, e.Message)
		case e.Field != "":
			details = append(details, fmt.Sprintf("%s: %s", e.Field, e.Code))
		}
	}
	if len(details) == 0 {
		return message
	}
	return fmt.Sprintf("%s: %s", message, strings.Join(details, "; "))
}

func statusCode(resp *github.Response, fallback int) int {
	if resp != nil && resp.Response != nil {
		return resp.StatusCode
	}
	return fallback
}
