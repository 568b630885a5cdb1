package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"pseudogo/internal/diag"
	"pseudogo/internal/source"
)

// LocalExec runs generated Python against a python3 binary on PATH. It is a
// test/dev convenience standing in for the production sandbox (a
// browser-hosted Python runtime), not a hardened execution environment —
// callers should not expose it to untrusted network input.
type LocalExec struct {
	// Interpreter overrides the executable name; defaults to "python3".
	Interpreter string
}

func (l LocalExec) interpreter() string {
	if l.Interpreter != "" {
		return l.Interpreter
	}
	return "python3"
}

// virtualFilesLiteral marks the emitted prelude's fixed initializer, which
// Run rewrites with the request's seed content before executing.
const virtualFilesLiteral = "__VIRTUAL_FILES = {}"

// lastLineRE finds "line N" occurrences the way a Python traceback reports
// the frame where an exception was raised.
var lastLineRE = regexp.MustCompile(`line (\d+)`)

// Run passes req.PythonCode to a python3 subprocess as its "-c" argument,
// feeds req.StdinLines on its standard input, seeds __VIRTUAL_FILES
// from req.VirtualFiles before the program runs, and waits up to
// req.Timeout (if positive) before cancelling.
func (l LocalExec) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	dumpFile, err := os.CreateTemp("", "pseudogo-vfiles-*.json")
	if err != nil {
		return RunResult{}, fmt.Errorf("creating virtual file dump: %w", err)
	}
	dumpPath := dumpFile.Name()
	dumpFile.Close()
	defer os.Remove(dumpPath)

	code, err := prepareProgram(req.PythonCode, req.VirtualFiles, dumpPath)
	if err != nil {
		return RunResult{}, err
	}

	cmd := exec.CommandContext(ctx, l.interpreter(), "-c", code)
	cmd.Stdin = strings.NewReader(joinStdinLines(req.StdinLines))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	result := RunResult{
		Stdout:       stdout.String(),
		Stderr:       stderr.String(),
		VirtualFiles: readVirtualFiles(dumpPath),
	}

	if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.Diagnostics = append(result.Diagnostics, diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.RunExecutionTimeout,
			Message:  "execution timed out",
		})
		return result, nil
	}

	if runErr == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		message, line := distillTraceback(result.Stderr)
		result.Diagnostics = append(result.Diagnostics, diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.RunTraceback,
			Message:  message,
			Span:     source.Point(0, line, 1),
		})
		return result, nil
	}

	return result, fmt.Errorf("running %s: %w", l.interpreter(), runErr)
}

// prepareProgram seeds the compiled program's __VIRTUAL_FILES global with
// the request's content and registers an atexit hook that dumps the dict's
// final state to dumpPath as JSON, so it survives even when the program
// raises an uncaught exception. Both are folded into a single-line
// replacement of the emitted prelude's __VIRTUAL_FILES literal rather than
// a prepended trailer, so a program's line numbers — and therefore the
// line distillTraceback extracts from a raised exception — are never
// shifted. A program that never emits the literal (e.g. one built by hand
// in a test, not by the codegen prelude) runs unmodified and reports no
// VirtualFiles.
func prepareProgram(pythonCode string, seed map[string][]string, dumpPath string) (string, error) {
	if !strings.Contains(pythonCode, virtualFilesLiteral) {
		return pythonCode, nil
	}

	if seed == nil {
		seed = map[string][]string{}
	}
	seedJSON, err := json.Marshal(seed)
	if err != nil {
		return "", fmt.Errorf("encoding virtual files: %w", err)
	}

	replacement := fmt.Sprintf(
		`__VIRTUAL_FILES = %s; import atexit as __pseudogo_atexit, json as __pseudogo_json; __pseudogo_atexit.register(lambda: __pseudogo_json.dump(__VIRTUAL_FILES, open(%q, "w")))`,
		seedJSON, dumpPath,
	)
	return strings.Replace(pythonCode, virtualFilesLiteral, replacement, 1), nil
}

func readVirtualFiles(dumpPath string) map[string][]string {
	data, err := os.ReadFile(dumpPath) // #nosec G304 -- path generated by this package
	if err != nil {
		return nil
	}
	var out map[string][]string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func joinStdinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// distillTraceback reduces a raw Python traceback to its last two lines
// (the frame and the exception message) and extracts the line number from
// the last "line N" match, per spec.md's RUN001 rule.
func distillTraceback(stderr string) (message string, line uint32) {
	trimmed := strings.TrimRight(stderr, "\n")
	lines := strings.Split(trimmed, "\n")
	tail := lines
	if len(tail) > 2 {
		tail = tail[len(tail)-2:]
	}
	message = strings.Join(tail, "\n")

	line = 1
	if matches := lastLineRE.FindAllStringSubmatch(trimmed, -1); len(matches) > 0 {
		last := matches[len(matches)-1]
		if n, err := strconv.ParseUint(last[1], 10, 32); err == nil {
			line = uint32(n)
		}
	}
	return message, line
}
