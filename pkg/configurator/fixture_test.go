package configurator

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/postinstall/pkg/config"
	"github.com/jaspreet-dot-casa/postinstall/pkg/executor"
)

const ssTemplate = `{
    "server": "",
    "server_port": 8388,
    "local_address": "127.0.0.1",
    "local_port": 1080,
    "password": "",
    "timeout": 300,
    "method": "chacha20-ietf-poly1305"
}
`

const sudoersSeed = "root ALL=(ALL) ALL\n"

// tester is satisfied by both *testing.T and *rapid.T.
type tester interface {
	require.TestingT
	Helper()
}

type fixture struct {
	fs     afero.Fs
	runner *executor.RecordingRunner
	cfg    *config.Config
}

// newFixture builds an in-memory target system for user alice with every
// staged file in place.
func newFixture(t tester, pkgs ...string) *fixture {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/home/alice", 0755))
	require.NoError(t, fs.MkdirAll(SystemdUnitDir, 0755))
	require.NoError(t, afero.WriteFile(fs, SudoersPath, []byte(sudoersSeed), 0440))

	f := &fixture{
		fs:     fs,
		runner: &executor.RecordingRunner{},
		cfg: &config.Config{
			System:   config.SystemConfig{Username: "alice"},
			Packages: config.PackagesConfig{Pacman: pkgs},
			Shadowsocks: config.ShadowsocksConfig{
				Server:   "1.2.3.4",
				Password: "secret",
			},
		},
	}
	f.stage(t)
	return f
}

func (f *fixture) stage(t tester) {
	t.Helper()
	staged := map[string]string{
		StagedZshrc:             "export ZSH=$HOME/.oh-my-zsh\n",
		StagedCodeRootSettings:  `{"window.titleBarStyle": "custom"}`,
		StagedCodeUserSettings:  `{"workbench.colorTheme": "SynthWave '84"}`,
		StagedShadowsocksUnit:   "[Unit]\nDescription=Shadowsocks local\n",
		StagedShadowsocksConfig: ssTemplate,
	}
	for name, content := range staged {
		path := filepath.Join(config.DefaultStagingDir, name)
		require.NoError(t, afero.WriteFile(f.fs, path, []byte(content), 0644))
	}
}

func (f *fixture) configurator() *Configurator {
	nop := zerolog.Nop()
	return New(f.cfg, Options{
		Runner: f.runner,
		Fs:     f.fs,
		Logger: &nop,
	})
}

// simulateGitClone makes git clone populate its destination.
func (f *fixture) simulateGitClone() {
	f.runner.Handler = func(inv executor.Invocation) error {
		if inv.Name == "git" && len(inv.Args) == 3 {
			dest := inv.Args[2]
			if err := f.fs.MkdirAll(dest, 0755); err != nil {
				return err
			}
			return afero.WriteFile(f.fs, filepath.Join(dest, "README.md"), []byte("cloned"), 0644)
		}
		return nil
	}
}

// fsState maps every path in fs to its content ("/" suffix for directories).
func fsState(t tester, fs afero.Fs) map[string]string {
	t.Helper()
	state := map[string]string{}
	err := afero.Walk(fs, "/", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			state[path] = "/"
			return nil
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		state[path] = string(data)
		return nil
	})
	require.NoError(t, err)
	return state
}

func readFile(t tester, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}
