// Package fileutil holds the file helpers shared by the stores: atomic
// writes that skip unchanged content and canonical JSON formatting.
package fileutil

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/agentstation/curator/pkg/constants"
	"github.com/agentstation/curator/pkg/errors"
)

// WriteIfChanged writes data to path unless the file already holds exactly
// data. It reports whether a write happened.
func WriteIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, errors.WrapIO("read", path, err)
	}
	if err := WriteAtomic(path, data); err != nil {
		return false, err
	}
	return true, nil
}

// WriteAtomic replaces path with data through a temp file in the same
// directory, so readers never observe a half-written document.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tempPath := tmp.Name()
	defer os.Remove(tempPath) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", tempPath, err)
	}
	if err := tmp.Chmod(constants.FilePermissions); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("chmod", tempPath, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
