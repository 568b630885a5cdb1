// Package sandbox defines the request/response envelope exchanged with the
// out-of-process execution sandbox named in spec.md's external interfaces,
// plus a reference implementation used by tests and `pseudogo run`. The
// compiler core never depends on this package.
package sandbox

import (
	"context"
	"time"

	"pseudogo/internal/diag"
)

// RunRequest is what a caller sends the sandbox: the generated Python
// source, the lines to feed it on stdin, the named virtual files it should
// see already populated (e.g. for READ-mode OPENFILE calls), and how long
// to let it run.
type RunRequest struct {
	PythonCode   string
	StdinLines   []string
	VirtualFiles map[string][]string
	Timeout      time.Duration
}

// RunResult is what the sandbox sends back, including the virtual file
// contents as they stood when the program finished (or crashed).
type RunResult struct {
	Stdout       string
	Stderr       string
	ExitCode     int
	TimedOut     bool
	Diagnostics  []diag.Diagnostic
	VirtualFiles map[string][]string
}

// Client is implemented by any concrete sandbox: a browser-hosted Python
// runtime, a subprocess, a container. The compile pipeline never talks to
// a Client directly — only `pseudogo run` and tests do.
type Client interface {
	Run(ctx context.Context, req RunRequest) (RunResult, error)
}
