package doctor

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/jaspreet-dot-casa/postinstall/pkg/executor"
)

// toolDefinitions describes every binary a routine may invoke.
var toolDefinitions = map[string]struct {
	Name        string
	Description string
	Package     string
}{
	"git":       {"git", "Clones oh-my-zsh and its plugins", "git"},
	"chsh":      {"chsh", "Changes login shells", "util-linux"},
	"chown":     {"chown", "Hands files to the target user", "coreutils"},
	"su":        {"su", "Runs commands as the target user", "util-linux"},
	"systemctl": {"systemctl", "Enables services", "systemd"},
	"pacman":    {"pacman", "Installs supporting packages", "pacman"},
	"code":      {"Code - OSS", "Installs editor extensions", "code"},
}

// CheckTool checks that tool is on PATH.
func CheckTool(runner executor.CommandRunner, tool string) Check {
	def, ok := toolDefinitions[tool]
	if !ok {
		def.Name = tool
	}

	check := Check{
		ID:          tool,
		Name:        def.Name,
		Description: def.Description,
		FixCommand:  GetFixCommand(tool),
	}

	path, err := runner.LookPath(tool)
	if err != nil {
		check.Status = StatusMissing
		check.Message = "not installed"
		return check
	}

	check.Status = StatusOK
	check.Message = path
	return check
}

// CheckRoot checks that the pass would run with root privileges.
func CheckRoot(euid int) Check {
	check := Check{
		ID:          IDRoot,
		Name:        "Root privileges",
		Description: "Routines write to /etc and other users' homes",
	}

	if euid != 0 {
		check.Status = StatusWarning
		check.Message = fmt.Sprintf("running as uid %d", euid)
		return check
	}

	check.Status = StatusOK
	check.Message = "running as root"
	return check
}

// CheckStagingDir checks that the staging directory exists.
func CheckStagingDir(fs afero.Fs, dir string) Check {
	check := Check{
		ID:          IDStagingDir,
		Name:        "Staging directory",
		Description: "Holds files left by earlier installer stages",
	}

	isDir, err := afero.IsDir(fs, dir)
	switch {
	case err != nil && !isNotExist(fs, dir):
		check.Status = StatusError
		check.Message = err.Error()
	case !isDir:
		check.Status = StatusMissing
		check.Message = "no directory at " + dir
	default:
		check.Status = StatusOK
		check.Message = dir
	}
	return check
}

func isNotExist(fs afero.Fs, path string) bool {
	exists, err := afero.Exists(fs, path)
	return err == nil && !exists
}
