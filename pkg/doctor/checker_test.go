package doctor

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/postinstall/pkg/config"
	"github.com/jaspreet-dot-casa/postinstall/pkg/executor"
)

func lookPathExcept(missing ...string) func(string) (string, error) {
	return func(file string) (string, error) {
		for _, m := range missing {
			if file == m {
				return "", errors.New("not found")
			}
		}
		return "/usr/bin/" + file, nil
	}
}

func TestCheckTool_Installed(t *testing.T) {
	runner := &executor.RecordingRunner{}

	check := CheckTool(runner, "git")

	assert.Equal(t, "git", check.ID)
	assert.Equal(t, StatusOK, check.Status)
	assert.Equal(t, "/usr/bin/git", check.Message)
	assert.Empty(t, runner.Invocations, "lookups must not run anything")
}

func TestCheckTool_NotInstalled(t *testing.T) {
	runner := &executor.RecordingRunner{LookPathFunc: lookPathExcept("code")}

	check := CheckTool(runner, "code")

	assert.Equal(t, "Code - OSS", check.Name)
	assert.Equal(t, StatusMissing, check.Status)
	assert.Equal(t, "not installed", check.Message)
	require.NotNil(t, check.FixCommand)
	assert.Equal(t, "code", check.FixCommand.Package)
}

func TestCheckRoot(t *testing.T) {
	assert.Equal(t, StatusOK, CheckRoot(0).Status)

	check := CheckRoot(1000)
	assert.Equal(t, StatusWarning, check.Status)
	assert.Equal(t, "running as uid 1000", check.Message)
}

func TestCheckStagingDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/root/installer", 0755))
	require.NoError(t, afero.WriteFile(fs, "/root/file", []byte("x"), 0644))

	tests := []struct {
		dir    string
		status CheckStatus
	}{
		{"/root/installer", StatusOK},
		{"/root/missing", StatusMissing},
		{"/root/file", StatusMissing},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			assert.Equal(t, tt.status, CheckStagingDir(fs, tt.dir).Status)
		})
	}
}

func TestChecker_RequiredTools(t *testing.T) {
	cfg := &config.Config{
		Packages: config.PackagesConfig{Pacman: []string{"gdm", "zsh", "virt-manager", "vim"}},
	}
	checker := NewCheckerWith(cfg, &executor.RecordingRunner{}, afero.NewMemMapFs(), func() int { return 0 })

	tools, requiredBy := checker.RequiredTools()

	assert.Equal(t, []string{"chsh", "chown", "git", "pacman", "systemctl"}, tools)
	assert.Equal(t, []string{"virt-manager", "gdm"}, requiredBy["systemctl"])
	assert.Equal(t, []string{"zsh"}, requiredBy["git"])
}

func TestChecker_CheckAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(config.DefaultStagingDir, 0755))
	cfg := &config.Config{
		Packages: config.PackagesConfig{Pacman: []string{"gvfs-google", "dhcpcd"}},
	}
	runner := &executor.RecordingRunner{LookPathFunc: lookPathExcept("pacman")}
	checker := NewCheckerWith(cfg, runner, fs, func() int { return 0 })

	groups := checker.CheckAll()

	require.Len(t, groups, 2)
	assert.Equal(t, GroupSystem, groups[0].ID)
	assert.Equal(t, GroupTools, groups[1].ID)

	tools := groups[1].Checks
	require.Len(t, tools, 2)
	assert.Equal(t, "pacman", tools[0].ID)
	assert.Equal(t, StatusMissing, tools[0].Status)
	assert.Equal(t, []string{"gvfs-google"}, tools[0].RequiredBy)
	assert.Equal(t, "systemctl", tools[1].ID)
	assert.Equal(t, StatusOK, tools[1].Status)

	assert.True(t, HasIssues(groups))
}

func TestChecker_NothingSelected(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(config.DefaultStagingDir, 0755))
	checker := NewCheckerWith(&config.Config{}, &executor.RecordingRunner{}, fs, func() int { return 0 })

	groups := checker.CheckAll()

	assert.Empty(t, groups[1].Checks)
	assert.False(t, HasIssues(groups))
}

func TestGetSummary(t *testing.T) {
	groups := []CheckGroup{
		{
			ID: GroupTools,
			Checks: []Check{
				{ID: "test1", Status: StatusOK},
				{ID: "test2", Status: StatusMissing},
				{ID: "test3", Status: StatusWarning},
			},
		},
	}

	summary := GetSummary(groups)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.OK)
	assert.Equal(t, 1, summary.Missing)
	assert.Equal(t, 1, summary.Warnings)
	assert.Equal(t, 0, summary.Errors)
}

func TestHasIssues(t *testing.T) {
	tests := []struct {
		name     string
		groups   []CheckGroup
		expected bool
	}{
		{
			name: "no issues",
			groups: []CheckGroup{
				{Checks: []Check{{Status: StatusOK}, {Status: StatusOK}}},
			},
			expected: false,
		},
		{
			name: "has missing",
			groups: []CheckGroup{
				{Checks: []Check{{Status: StatusOK}, {Status: StatusMissing}}},
			},
			expected: true,
		},
		{
			name: "has error",
			groups: []CheckGroup{
				{Checks: []Check{{Status: StatusOK}, {Status: StatusError}}},
			},
			expected: true,
		},
		{
			name: "warning only",
			groups: []CheckGroup{
				{Checks: []Check{{Status: StatusOK}, {Status: StatusWarning}}},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasIssues(tt.groups))
		})
	}
}

func TestCheckStatus_String(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "missing", StatusMissing.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "warning", StatusWarning.String())
	assert.Equal(t, "unknown", CheckStatus(42).String())
}
