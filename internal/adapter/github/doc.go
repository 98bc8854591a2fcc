// Package github files issues through the GitHub REST API.
//
// This adapter layer handles GitHub-specific concerns without polluting the
// domain layer. It wraps google/go-github behind a narrow service interface
// so tests can substitute the API surface, and it maps API failures to typed
// errors the command layer can report distinctly.
//
// The design keeps the domain layer pure and platform-agnostic, enabling
// future support for GitLab, Bitbucket, or other platforms.
package github
