package story

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bkyoung/storysmith/internal/domain"
)

// displayCaser normalizes free-form complexity input ("medium", "HIGH") for
// presentation in the issue body.
var displayCaser = cases.Title(language.English)

// FallbackStory renders a templated story for requests that run without a
// completion backend, or after the backend failed. The requested title and
// description appear verbatim so nothing the caller provided is lost.
func FallbackStory(req domain.StoryRequest) domain.Story {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", req.Title)
	b.WriteString("\n## Description\n")
	fmt.Fprintf(&b, "%s\n", req.Description)
	b.WriteString("\n## Details\n")
	fmt.Fprintf(&b, "- **Complexity:** %s\n", displayCaser.String(req.Complexity))
	fmt.Fprintf(&b, "- **Estimated Duration:** %s\n", req.Duration)
	b.WriteString("\n## Acceptance Criteria\n")
	b.WriteString("- The behavior described above is implemented\n")
	b.WriteString("- Changes are covered by automated tests\n")
	b.WriteString("- Documentation reflects the new behavior\n")
	b.WriteString("\n## Definition of Done\n")
	b.WriteString("- [ ] Code is written and reviewed\n")
	b.WriteString("- [ ] Tests are written and passing\n")
	b.WriteString("- [ ] Documentation is updated\n")

	return domain.Story{
		Title:     req.Title,
		Body:      withFooter(b.String(), domain.GeneratorTemplate),
		Generator: domain.GeneratorTemplate,
	}
}

// ParseStory converts raw completion text into a story attributed to the
// named generator. The extracted title replaces whatever title the caller
// configured; the rest of the completion becomes the body.
func ParseStory(text, generator string) domain.Story {
	return domain.Story{
		Title:     ExtractTitle(text),
		Body:      withFooter(ExtractBody(text), generator),
		Generator: generator,
	}
}

// withFooter appends the generation trailer carried on every issue body.
func withFooter(body, generator string) string {
	return strings.TrimRight(body, "\n") + fmt.Sprintf("\n\n---\n_User story drafted by %s._\n", generator)
}
