package configurator

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// SnapshotFs copies the given paths from src into a fresh in-memory
// filesystem. Directories are copied with their whole tree, files with their
// mode; other entries such as symlinks are skipped. Paths missing from src
// are skipped too, so the pass fails on them the same way it would for real.
func SnapshotFs(src afero.Fs, paths []string) (afero.Fs, error) {
	dst := afero.NewMemMapFs()

	for _, root := range paths {
		if _, err := src.Stat(root); err != nil {
			continue
		}

		err := afero.Walk(src, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			return copyEntry(src, dst, path, info)
		})
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", root, err)
		}
	}

	return dst, nil
}

func copyEntry(src, dst afero.Fs, path string, info os.FileInfo) error {
	switch {
	case info.IsDir():
		return dst.MkdirAll(path, info.Mode().Perm())
	case info.Mode().IsRegular():
		data, err := afero.ReadFile(src, path)
		if err != nil {
			return err
		}
		return afero.WriteFile(dst, path, data, info.Mode().Perm())
	default:
		return nil
	}
}
