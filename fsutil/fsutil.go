package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// SanitizeFileName replaces characters that are unsafe in file and directory
// names on common filesystems with underscores and trims surrounding
// whitespace.
func SanitizeFileName(name string) string {
	out := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		default:
			return r
		}
	}, name)

	return strings.TrimSpace(out)
}

func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); nil != err {
		return fmt.Errorf("failed to create directory %s: %v", path, err)
	}

	return nil
}

// Move renames src to dst, falling back to a copy followed by a removal when
// the two paths live on different filesystems.
func Move(src, dst string) error {
	if err := EnsureDir(filepath.Dir(dst)); nil != err {
		return err
	}

	if err := os.Rename(src, dst); nil != err {
		if errors.Is(err, syscall.EXDEV) {
			return copyAndRemove(src, dst)
		}

		return fmt.Errorf("failed to move %s to %s: %v", src, dst, err)
	}

	return nil
}

func copyAndRemove(src, dst string) (err error) {
	srcFile, err := os.Open(src)
	if nil != err {
		return fmt.Errorf("failed to open source file %s: %v", src, err)
	}
	defer func() {
		if closeErr := srcFile.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close source file: %v", closeErr))
		}
	}()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if nil != err {
		return fmt.Errorf("failed to create destination file %s: %v", dst, err)
	}
	defer func() {
		if closeErr := dstFile.Close(); nil != closeErr {
			err = errors.Join(err, fmt.Errorf("failed to close destination file: %v", closeErr))
		}
	}()

	if _, err := io.Copy(dstFile, srcFile); nil != err {
		if removeErr := os.Remove(dst); nil != removeErr && !errors.Is(removeErr, os.ErrNotExist) {
			err = errors.Join(err, fmt.Errorf("failed to remove partial destination file: %v", removeErr))
		}

		return fmt.Errorf("failed to copy %s to %s: %v", src, dst, err)
	}

	if err := os.Remove(src); nil != err {
		return fmt.Errorf("failed to remove source file %s: %v", src, err)
	}

	return nil
}
