package story

import (
	"os"

	"golang.org/x/term"
)

// IsTTY checks if the given file descriptor is a terminal.
// Workflow runners never attach one, so this distinguishes a developer
// running the binary by hand from a pipeline step.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// IsOutputTerminal checks if stdout is a TTY, indicating that output is
// being read directly by a person rather than collected as workflow logs.
// The automatic log format picks the human layout in that case.
func IsOutputTerminal() bool {
	return IsTTY(os.Stdout.Fd())
}
