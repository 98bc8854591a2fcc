package story_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/bkyoung/storysmith/internal/domain"
	"github.com/bkyoung/storysmith/internal/usecase/story"
)

func TestBuildMessages_FewShotShape(t *testing.T) {
	req := domain.StoryRequest{
		Title:       "Add dark mode",
		Description: "Users want a dark theme",
		Complexity:  "Medium",
		Duration:    "1 week",
	}

	messages := story.BuildMessages(req)
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}

	roles := []string{messages[0].Role, messages[1].Role, messages[2].Role, messages[3].Role}
	want := []string{story.RoleSystem, story.RoleUser, story.RoleAssistant, story.RoleUser}
	if !reflect.DeepEqual(roles, want) {
		t.Fatalf("unexpected role order: %v", roles)
	}

	if messages[0].Content != "You are a helpful assistant who writes detailed user stories for software development." {
		t.Fatalf("unexpected system prompt: %q", messages[0].Content)
	}

	// The example exchange teaches the structure the parser expects.
	if !strings.Contains(messages[1].Content, "# Title") {
		t.Fatalf("sample prompt should describe the title heading")
	}
	if !strings.Contains(messages[1].Content, "## Definition of Done") {
		t.Fatalf("sample prompt should describe the definition of done section")
	}
	if !strings.Contains(messages[2].Content, "# Implement User Authentication System") {
		t.Fatalf("sample response should carry a concrete title")
	}
}

func TestBuildMessages_InterpolatesRequest(t *testing.T) {
	req := domain.StoryRequest{
		Title:       "Add dark mode",
		Description: "Users want a dark theme",
		Complexity:  "High",
		Duration:    "2 weeks",
	}

	last := story.BuildMessages(req)[3].Content

	for _, line := range []string{
		"Title: Add dark mode",
		"Description: Users want a dark theme",
		"Complexity: High",
		"Estimated Duration: 2 weeks",
	} {
		if !strings.Contains(last, line) {
			t.Fatalf("final user message missing %q:\n%s", line, last)
		}
	}

	if !strings.Contains(last, "generate a comprehensive user story") {
		t.Fatalf("final user message should restate the instruction")
	}
}

func TestBuildMessages_Deterministic(t *testing.T) {
	req := domain.StoryRequest{Title: "Same", Description: "Input", Complexity: "Low", Duration: "1 day"}

	first := story.BuildMessages(req)
	second := story.BuildMessages(req)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical requests must produce identical conversations")
	}
}
