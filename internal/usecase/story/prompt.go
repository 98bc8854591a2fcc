package story

import (
	"fmt"

	"github.com/bkyoung/storysmith/internal/domain"
)

// systemPrompt frames every conversation sent to a completion backend.
const systemPrompt = "You are a helpful assistant who writes detailed user stories for software development."

// samplePrompt is the few-shot example request. Together with
// goodSampleResponse it teaches the model the exact document structure we
// parse afterwards, so changing either string changes what ExtractTitle and
// ExtractBody have to cope with.
const samplePrompt = `
Generate a detailed user story for a software development task with the following structure:

# Title
[A concise, descriptive title for the user story]

## User Story
As a [type of user], I want [goal] so that [benefit].

## Acceptance Criteria
- List specific, testable criteria that define when this story is complete
- Each criterion should be clear and measurable
- Include at least 3-5 acceptance criteria

## Technical Details
- List technical considerations or implementation notes
- Include any dependencies or prerequisites
- Mention potential challenges or risks

## Testing Strategy
- Describe how this feature should be tested
- Include different types of testing (unit, integration, etc.)

## Definition of Done
- Checklist of items that must be completed for this story to be considered done
`

// goodSampleResponse is the few-shot example answer.
const goodSampleResponse = `
# Implement User Authentication System

## User Story
As a developer, I want to implement user authentication so that users can securely access their accounts.

## Acceptance Criteria
- Users can register with email and password
- Users can log in with their credentials
- Users can log out from the application
- Session tokens expire after 24 hours
- Failed login attempts are limited to 5 per hour

## Technical Details
- Use JWT tokens for authentication
- Hash passwords using bcrypt
- Store user credentials in the database
- Implement rate limiting for login attempts
- Add middleware for protected routes
- Dependencies: bcrypt, jsonwebtoken libraries

## Testing Strategy
- Unit tests for authentication functions
- Integration tests for login/logout flow
- Security testing for password hashing
- Load testing for rate limiting
- Edge case testing (invalid credentials, expired tokens)

## Definition of Done
- [ ] Code is written and reviewed
- [ ] Unit tests pass with >80% coverage
- [ ] Integration tests pass
- [ ] Security scan shows no vulnerabilities
- [ ] Documentation is updated
- [ ] Feature is deployed to staging environment
`

const completionPrompt = `
Based on the provided information, generate a comprehensive user story following the structure above.
`

// BuildMessages assembles the few-shot conversation for a story request.
// The same request always yields the same messages, so the only
// nondeterminism in a run lives inside the completion service itself.
func BuildMessages(req domain.StoryRequest) []Message {
	return []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: samplePrompt},
		{Role: RoleAssistant, Content: goodSampleResponse},
		{Role: RoleUser, Content: buildUserPrompt(req)},
	}
}

func buildUserPrompt(req domain.StoryRequest) string {
	return fmt.Sprintf(`
%s
Title: %s
Description: %s
Complexity: %s
Estimated Duration: %s

Please generate a complete user story that addresses this requirement.
`, completionPrompt, req.Title, req.Description, req.Complexity, req.Duration)
}
