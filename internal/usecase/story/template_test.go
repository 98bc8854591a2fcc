package story_test

import (
	"strings"
	"testing"

	"github.com/bkyoung/storysmith/internal/domain"
	"github.com/bkyoung/storysmith/internal/usecase/story"
)

func TestFallbackStory_CarriesRequestVerbatim(t *testing.T) {
	req := domain.StoryRequest{
		Title:       "Add OAuth2 login (Google & GitHub)",
		Description: "Support \"Sign in with Google\" so admins stop provisioning passwords.",
		Complexity:  "medium",
		Duration:    "2 weeks",
	}

	st := story.FallbackStory(req)

	if st.Title != req.Title {
		t.Fatalf("fallback story must keep the requested title, got %q", st.Title)
	}
	if st.Generator != domain.GeneratorTemplate {
		t.Fatalf("expected template generator, got %q", st.Generator)
	}
	if !strings.Contains(st.Body, req.Title) {
		t.Fatalf("body must contain the requested title verbatim")
	}
	if !strings.Contains(st.Body, req.Description) {
		t.Fatalf("body must contain the requested description verbatim")
	}
	if !strings.Contains(st.Body, "**Complexity:** Medium") {
		t.Fatalf("complexity should be title-cased for display, got:\n%s", st.Body)
	}
	if !strings.Contains(st.Body, "**Estimated Duration:** 2 weeks") {
		t.Fatalf("duration should appear unchanged")
	}
	if !strings.Contains(st.Body, "_User story drafted by template._") {
		t.Fatalf("body should end with the generation footer")
	}
}

func TestFallbackStory_SectionsPresent(t *testing.T) {
	st := story.FallbackStory(domain.StoryRequest{
		Title:       "Ship it",
		Description: "A thing",
		Complexity:  "Low",
		Duration:    "1 day",
	})

	for _, section := range []string{
		"## Description",
		"## Details",
		"## Acceptance Criteria",
		"## Definition of Done",
	} {
		if !strings.Contains(st.Body, section) {
			t.Fatalf("fallback body missing section %q:\n%s", section, st.Body)
		}
	}
}

func TestParseStory_UsesExtractedTitle(t *testing.T) {
	completion := `# Implement Dark Mode

## User Story
As a user, I want a dark theme so that my eyes rest at night.`

	st := story.ParseStory(completion, "gpt-4o-mini")

	if st.Title != "Implement Dark Mode" {
		t.Fatalf("expected extracted title, got %q", st.Title)
	}
	if strings.Contains(st.Body, "# Implement Dark Mode") {
		t.Fatalf("body should not repeat the title line")
	}
	if !strings.Contains(st.Body, "## User Story") {
		t.Fatalf("body should keep the completion sections")
	}
	if !strings.Contains(st.Body, "_User story drafted by gpt-4o-mini._") {
		t.Fatalf("body should carry the generator footer")
	}
	if st.Generator != "gpt-4o-mini" {
		t.Fatalf("expected generator attribution, got %q", st.Generator)
	}
}

func TestParseStory_PlaceholderTitleFallsBack(t *testing.T) {
	completion := "# Title\n\n## User Story\nAs a user, I want something."

	st := story.ParseStory(completion, "gpt-4o-mini")
	if st.Title == "Title" {
		t.Fatalf("placeholder heading must not become the issue title")
	}
}
