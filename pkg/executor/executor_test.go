package executor

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner() (*RealRunner, *bytes.Buffer) {
	var out bytes.Buffer
	r := NewRealRunner(zerolog.Nop())
	r.Stdout = &out
	r.Stderr = &out
	return r, &out
}

func TestRealRunner_Run_Success(t *testing.T) {
	r, out := newTestRunner()

	err := r.Run(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestRealRunner_Run_NonZeroExit(t *testing.T) {
	r, _ := newTestRunner()

	err := r.Run(context.Background(), "sh", "-c", "exit 3")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode)
	assert.Contains(t, exitErr.Command, "sh -c")
	assert.True(t, IsExitError(err))
}

func TestRealRunner_Run_MissingBinary(t *testing.T) {
	r, _ := newTestRunner()

	err := r.Run(context.Background(), "definitely-not-a-real-binary-xyz")
	require.Error(t, err)
	assert.False(t, IsExitError(err), "spawn failures must not look like exit errors")
	assert.Contains(t, err.Error(), "failed to start")
}

func TestSuArgs(t *testing.T) {
	tests := []struct {
		name string
		user string
		cmd  string
		args []string
		want []string
	}{
		{
			name: "simple command",
			user: "alice",
			cmd:  "code",
			args: []string{"--install-extension", "ms-python.python"},
			want: []string{"alice", "-c", "code --install-extension ms-python.python"},
		},
		{
			name: "argument with spaces is quoted",
			user: "bob",
			cmd:  "touch",
			args: []string{"my file"},
			want: []string{"bob", "-c", `touch 'my file'`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuArgs(tt.user, tt.cmd, tt.args...))
		})
	}
}

func TestRecordingRunner(t *testing.T) {
	r := &RecordingRunner{}
	ctx := context.Background()

	require.NoError(t, r.Run(ctx, "systemctl", "enable", "gdm.service"))
	require.NoError(t, r.RunAs(ctx, "alice", "code", "--install-extension", "foo.bar"))

	require.Len(t, r.Invocations, 2)
	assert.Equal(t, "", r.Invocations[0].User)
	assert.Equal(t, "alice", r.Invocations[1].User)
	assert.Equal(t, []string{
		"systemctl enable gdm.service",
		"[as alice] code --install-extension foo.bar",
	}, r.Commands())
	assert.Len(t, r.Matching("systemctl enable"), 1)
}

func TestRecordingRunner_Handler(t *testing.T) {
	boom := errors.New("boom")
	r := &RecordingRunner{
		Handler: func(inv Invocation) error {
			if inv.Name == "git" {
				return boom
			}
			return nil
		},
	}

	err := r.Run(context.Background(), "git", "clone", "url", "dest")
	assert.ErrorIs(t, err, boom)
	assert.Len(t, r.Invocations, 1, "failed invocations are still recorded")
}

func TestRecordingRunner_LookPath(t *testing.T) {
	r := &RecordingRunner{}
	path, err := r.LookPath("git")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/git", path)

	r.LookPathFunc = func(file string) (string, error) {
		return "", errors.New("not found")
	}
	_, err = r.LookPath("git")
	assert.Error(t, err)
}
