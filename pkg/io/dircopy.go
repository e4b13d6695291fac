package io

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// copy a directory tree, recursively.
//
// args:
//   - src: directory to be copied from.
//   - dest: directory to be copied to. Created if missing.
//
// Regular files and directories are copied with their permission bits.
// Other entries (symlinks, devices, ...) are skipped.
//
// return error:
//
//	nil when the whole tree is copied. Otherwise, the error of the first
//	failed copy.
func DirCopy(src string, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm())
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		from, err := os.Open(path)
		if err != nil {
			return err
		}
		defer from.Close()

		to, err := CreateAll(target, info.Mode().Perm(), 0755)
		if err != nil {
			return err
		}
		defer to.Close()

		_, err = io.Copy(to, from)
		return err
	})
}
