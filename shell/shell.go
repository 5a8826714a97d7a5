package shell

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

const DefaultShellPath = "sh"

// CommandError reports a command that exited non-zero. The subshell's stderr is
// discarded, so the command string is the only diagnostic we carry.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed: %s, error: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Escape quotes a single token so the subshell treats it as a literal value.
// It follows POSIX single-quote rules: the only character that needs special
// handling inside single quotes is the single quote itself.
func Escape(token string) string {
	return "'" + strings.ReplaceAll(token, "'", `'\''`) + "'"
}

// Build assembles a command string from an executable name and positional
// arguments, escaping every token individually.
func Build(exe string, args ...string) string {
	tokens := make([]string, 0, len(args)+1)
	tokens = append(tokens, Escape(exe))

	for _, arg := range args {
		tokens = append(tokens, Escape(arg))
	}

	return strings.Join(tokens, " ")
}

type Runner interface {
	Run(command string) ([]string, error)
}

type ExecRunner struct {
	shellPath string
}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{shellPath: DefaultShellPath}
}

// Run executes the command string in a subshell and returns the captured
// stdout lines. Stderr is discarded on purpose, failures surface as a
// CommandError that carries the command string only.
func (runner *ExecRunner) Run(command string) ([]string, error) {
	cmd := exec.Command(runner.shellPath, "-c", command)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = nil

	if err := cmd.Run(); err != nil {
		return nil, &CommandError{Command: command, Err: err}
	}

	var lines []string

	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fail to scan command output, error: %v", err)
	}

	return lines, nil
}
