package configurator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
)

// HomePath returns /home/<username> joined with rel.
func (c *Configurator) HomePath(rel ...string) string {
	return filepath.Join(append([]string{HomeBase, c.cfg.System.Username}, rel...)...)
}

// ChownToUser recursively hands path to the target user. The group is left
// to the user's login group.
func (c *Configurator) ChownToUser(ctx context.Context, path string) error {
	if err := c.runner.Run(ctx, "chown", "-R", c.cfg.System.Username+":", path); err != nil {
		return fmt.Errorf("chown %s: %w", path, err)
	}
	return nil
}

// CloneRepository clones url into dest. It refuses a dest that already has
// content, which git would reject anyway.
func (c *Configurator) CloneRepository(ctx context.Context, url, dest string) error {
	exists, err := afero.Exists(c.fs, dest)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dest, err)
	}
	if exists {
		empty, err := afero.IsEmpty(c.fs, dest)
		if err != nil {
			return fmt.Errorf("stat %s: %w", dest, err)
		}
		if !empty {
			return fmt.Errorf("clone %s into %s: %w", url, dest, ErrDestinationExists)
		}
	}

	c.log.Debug().Str("url", url).Str("dest", dest).Msg("Cloning repository")
	if err := c.runner.Run(ctx, "git", "clone", url, dest); err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}

// EnableService enables a systemd unit by its verbatim name.
func (c *Configurator) EnableService(ctx context.Context, name string) error {
	if err := c.runner.Run(ctx, "systemctl", "enable", name); err != nil {
		return fmt.Errorf("enable %s: %w", name, err)
	}
	return nil
}

// moveFile renames src to dst, copying across filesystems when needed.
func (c *Configurator) moveFile(src, dst string) error {
	err := c.fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("move %s to %s: %w", src, dst, err)
	}

	info, err := c.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("move %s to %s: %w", src, dst, err)
	}
	data, err := afero.ReadFile(c.fs, src)
	if err != nil {
		return fmt.Errorf("move %s to %s: %w", src, dst, err)
	}
	if err := afero.WriteFile(c.fs, dst, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("move %s to %s: %w", src, dst, err)
	}
	if err := c.fs.Remove(src); err != nil {
		return fmt.Errorf("remove %s after copy: %w", src, err)
	}
	return nil
}

func (c *Configurator) mkdirAll(path string) error {
	if err := c.fs.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}

// rewriteFile replaces the content of an existing file, keeping its mode.
func (c *Configurator) rewriteFile(path string, data []byte) error {
	f, err := c.fs.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
