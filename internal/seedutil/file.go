package seedutil

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"
)

// WriteFile writes the contents of r to name by way of a temporary file
// in the same directory, so name is either left as it was or fully
// replaced. Missing parent directories are created.
func WriteFile(name string, r io.Reader, perm fs.FileMode) error {
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return err
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), name)
}

// FileDigest returns the digest of the file at name, or "" if it does
// not exist.
func FileDigest(name string) (digest.Digest, error) {
	f, err := os.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	defer f.Close()

	return digest.FromReader(f)
}

// WriteFileIfChanged writes b to name with WriteFile unless name
// already holds exactly b. It reports whether it wrote.
func WriteFileIfChanged(name string, b []byte, perm fs.FileMode) (bool, error) {
	current, err := FileDigest(name)
	if err != nil {
		return false, err
	}

	if current == digest.FromBytes(b) {
		return false, nil
	}

	if fi, err := os.Stat(name); err == nil {
		perm = fi.Mode().Perm()
	}

	return true, WriteFile(name, bytes.NewReader(b), perm)
}
