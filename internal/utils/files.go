package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var errEmptyPath = errors.New("empty path")

// Exists reports whether path exists. It never fails; a blank path is reported missing.
func Exists(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// ReadText returns the full content of a file as a string.
func ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", opError(OpRead, path, err)
	}
	return string(b), nil
}

// Stat returns file metadata, wrapping failures as read errors.
func Stat(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, opError(OpRead, path, err)
	}
	return info, nil
}

// WriteText creates or truncates path and writes text to it.
func WriteText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return opError(OpWrite, path, err)
	}
	return nil
}

// Copy copies the regular file src to dest. The destination directory must exist.
func Copy(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return opError(OpCopy, src, err)
	}
	defer in.Close()
	return copyTo(in, src, dest)
}

// CopyFrom copies name out of fsys to the on-disk path dest.
func CopyFrom(fsys fs.FS, name, dest string) error {
	in, err := fsys.Open(name)
	if err != nil {
		return opError(OpCopy, name, err)
	}
	defer in.Close()
	return copyTo(in, name, dest)
}

func copyTo(in io.Reader, src, dest string) error {
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return opError(OpCopy, src, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return opError(OpCopy, src, err)
	}
	if err := out.Close(); err != nil {
		return opError(OpCopy, src, err)
	}
	return nil
}

// EnsureDir creates path and any missing parents. Existing directories are fine.
func EnsureDir(path string) error {
	if strings.TrimSpace(path) == "" {
		return opError(OpCreateDir, path, errEmptyPath)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return opError(OpCreateDir, path, err)
	}
	return nil
}

// ListEntries returns the names in directory path, sorted.
func ListEntries(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, opError(OpReadDir, path, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// RemoveAll deletes path recursively. A missing path is not an error.
func RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return opError(OpRemove, path, err)
	}
	return nil
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// PrettyJSON marshals a value as indented JSON.
func PrettyJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	return b, nil
}

// FindRoot walks up from start looking for a directory that contains marker.
// If the input path is a file, it starts from its directory.
func FindRoot(start, marker string) (string, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = wd
	}
	info, err := os.Stat(start)
	if err != nil {
		return "", err
	}
	dir := start
	if !info.IsDir() {
		dir = filepath.Dir(start)
	}
	for {
		if Exists(filepath.Join(dir, marker)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("no %s directory found above %s", marker, start)
}
