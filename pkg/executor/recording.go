package executor

import (
	"context"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Invocation is a single recorded command.
type Invocation struct {
	User string // empty when run as the current user
	Name string
	Args []string
}

// String renders the invocation as a shell command line.
func (i Invocation) String() string {
	line := shellquote.Join(append([]string{i.Name}, i.Args...)...)
	if i.User != "" {
		return "[as " + i.User + "] " + line
	}
	return line
}

// RecordingRunner records commands instead of running them. It backs dry runs
// and tests.
type RecordingRunner struct {
	Invocations []Invocation

	// Handler, if set, is called for every invocation after it is recorded.
	// A non-nil return is reported as the command's error.
	Handler func(inv Invocation) error

	LookPathFunc func(file string) (string, error)
}

// Run records the command.
func (r *RecordingRunner) Run(_ context.Context, name string, args ...string) error {
	return r.record(Invocation{Name: name, Args: args})
}

// RunAs records the command along with the user it would run as.
func (r *RecordingRunner) RunAs(_ context.Context, user, name string, args ...string) error {
	return r.record(Invocation{User: user, Name: name, Args: args})
}

// LookPath defaults to pretending every tool lives in /usr/bin.
func (r *RecordingRunner) LookPath(file string) (string, error) {
	if r.LookPathFunc != nil {
		return r.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}

// Commands returns every recorded invocation rendered as a string.
func (r *RecordingRunner) Commands() []string {
	out := make([]string, len(r.Invocations))
	for i, inv := range r.Invocations {
		out[i] = inv.String()
	}
	return out
}

// Matching returns the recorded invocations whose command line starts with prefix.
func (r *RecordingRunner) Matching(prefix string) []Invocation {
	var out []Invocation
	for _, inv := range r.Invocations {
		if strings.HasPrefix(shellquote.Join(append([]string{inv.Name}, inv.Args...)...), prefix) {
			out = append(out, inv)
		}
	}
	return out
}

func (r *RecordingRunner) record(inv Invocation) error {
	inv.Args = append([]string(nil), inv.Args...)
	r.Invocations = append(r.Invocations, inv)
	if r.Handler != nil {
		return r.Handler(inv)
	}
	return nil
}
