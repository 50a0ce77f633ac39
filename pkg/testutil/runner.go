// Package testutil provides shared helpers for envup tests: a fake
// process runner and an isolated temp-dir environment.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Call records a single command invocation.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a single command line.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// FakeRunner is a run.Runner that records invocations and returns
// scripted results. All maps are keyed by the full command line
// (e.g. "apt-get install -y git").
type FakeRunner struct {
	mu sync.Mutex

	Calls []Call

	// RunErrs maps command lines to the error Run should return.
	RunErrs map[string]error

	// Outputs maps command lines to the bytes Output should return.
	Outputs map[string][]byte

	// OutputErrs maps command lines to the error Output should return.
	OutputErrs map[string]error

	// Binaries maps binary names to paths for LookPath. A nil map
	// means nothing is on PATH.
	Binaries map[string]string

	// Hooks run when Run matches a command. Keys are full command
	// lines, or bare command names as a fallback. The hook's error is
	// returned from Run, letting tests simulate side effects like a
	// clone creating its target directory.
	Hooks map[string]func(Call) error
}

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		RunErrs:    make(map[string]error),
		Outputs:    make(map[string][]byte),
		OutputErrs: make(map[string]error),
		Binaries:   make(map[string]string),
		Hooks:      make(map[string]func(Call) error),
	}
}

// Run implements run.Runner.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	call := Call{Name: name, Args: args}
	f.record(call)
	if hook, ok := f.Hooks[call.String()]; ok {
		return hook(call)
	}
	if hook, ok := f.Hooks[call.Name]; ok {
		return hook(call)
	}
	return f.RunErrs[call.String()]
}

// Output implements run.Runner.
func (f *FakeRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	call := Call{Name: name, Args: args}
	f.record(call)
	return f.Outputs[call.String()], f.OutputErrs[call.String()]
}

// LookPath implements run.Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if path, ok := f.Binaries[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

// CommandLines returns every recorded invocation as command-line strings.
func (f *FakeRunner) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.String()
	}
	return lines
}

// Ran reports whether the exact command line was invoked.
func (f *FakeRunner) Ran(line string) bool {
	for _, l := range f.CommandLines() {
		if l == line {
			return true
		}
	}
	return false
}

func (f *FakeRunner) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, c)
}
