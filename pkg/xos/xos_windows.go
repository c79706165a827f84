//go:build windows
// +build windows

// Package xos provides cross-platform atomic file operations.
// On Windows, atomic rename across drives is not always possible, so the
// temp file is created next to the target.
package xos

import (
	"io"
	"os"
	"path/filepath"
)

// WriteFile writes data to the named file via a same-directory temp file and
// rename.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tempName := tempFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tempName, perm); err != nil {
		return err
	}
	if err := os.Rename(tempName, filename); err != nil {
		return err
	}
	success = true
	return nil
}

// WriteReader writes data from a reader to the named file.
func WriteReader(filename string, r io.Reader, perm os.FileMode) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return WriteFile(filename, data, perm)
}
