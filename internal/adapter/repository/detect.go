// Package repository resolves which GitHub repository a run targets when the
// caller did not say. It reads the origin remote of the working directory's
// git checkout, which inside a workflow run points at the repository the
// runner checked out.
package repository

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	goGit "github.com/go-git/go-git/v5"
)

// Detect opens the repository containing dir and returns the owner and name
// parsed from its origin remote.
func Detect(dir string) (string, string, error) {
	repo, err := goGit.PlainOpenWithOptions(dir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", fmt.Errorf("open repo: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", errors.New("origin remote has no URL")
	}

	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL extracts the owner and repository name from a git remote URL
// in any of the shapes git produces: https, ssh, or the scp-like
// git@host:owner/repo form. A trailing .git suffix is ignored.
func ParseRemoteURL(raw string) (string, string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), ".git")

	if strings.Contains(trimmed, "://") {
		u, err := url.Parse(trimmed)
		if err != nil {
			return "", "", fmt.Errorf("parse remote url %q: %w", raw, err)
		}
		return splitOwnerRepo(raw, strings.Trim(u.Path, "/"))
	}

	// scp-like syntax: git@github.com:owner/repo
	if at := strings.Index(trimmed, "@"); at >= 0 {
		if colon := strings.Index(trimmed[at:], ":"); colon >= 0 {
			return splitOwnerRepo(raw, strings.Trim(trimmed[at+colon+1:], "/"))
		}
	}

	return "", "", fmt.Errorf("unrecognized remote url %q", raw)
}

func splitOwnerRepo(raw, path string) (string, string, error) {
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("remote url %q has no owner/repo path", raw)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
