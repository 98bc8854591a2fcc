package http

import (
	"fmt"
	"regexp"
)

const (
	// MaxLoggedResponseLength is the maximum length of response text to include in logs.
	// Responses longer than this are truncated to keep user content out of log aggregators.
	MaxLoggedResponseLength = 200
)

// urlSecretRe matches sensitive query parameters in URLs that can leak into
// error messages. Longer parameter names come first so the alternation does
// not stop at a shorter prefix.
var urlSecretRe = regexp.MustCompile(`(access_token|api_key|apiKey|token|key)=[^&"\s]+`)

// TruncateForLogging safely truncates a response string for logging purposes.
// Returns the first MaxLoggedResponseLength characters plus a truncation
// indicator when the input is longer.
func TruncateForLogging(response string) string {
	if len(response) <= MaxLoggedResponseLength {
		return response
	}
	return response[:MaxLoggedResponseLength] + fmt.Sprintf("... [truncated, total length=%d bytes]", len(response))
}

// RedactURLSecrets redacts API keys and other secrets from URLs in error
// messages before they reach stderr or logs.
//
// Example:
//
//	input:  "https://api.example.com/endpoint?key=secret123&foo=bar"
//	output: "https://api.example.com/endpoint?key=[REDACTED]&foo=bar"
func RedactURLSecrets(text string) string {
	if text == "" {
		return text
	}
	return urlSecretRe.ReplaceAllString(text, "$1=[REDACTED]")
}
