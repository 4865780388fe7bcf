package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	// stdin is shared by every prompt in a run. ReadString buffers
	// ahead, so a per-prompt reader would swallow the lines meant for
	// the prompts after it when input is piped.
	stdin = bufio.NewReader(os.Stdin)

	// stdinFile enables the no-echo password prompt on terminals.
	stdinFile = os.Stdin
)

// promptLine reads one trimmed line from stdin.
func promptLine(label string) (string, error) {
	fmt.Fprintf(os.Stdout, "%s: ", label)
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a
// terminal, with a plain read fallback for pipes.
func promptPassword(label string) (string, error) {
	if stdinFile != nil && term.IsTerminal(int(stdinFile.Fd())) {
		fmt.Fprintf(os.Stdout, "%s: ", label)
		raw, err := term.ReadPassword(int(stdinFile.Fd()))
		fmt.Fprintln(os.Stdout)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return promptLine(label)
}
