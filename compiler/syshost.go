package compiler

import (
	"os"
	"path/filepath"
	"time"

	"github.com/tsbuildhq/tsbuild/tspath"
)

// SystemHost is the Host backed by the operating system.
type SystemHost struct{}

// NewSystemHost returns the os-backed host.
func NewSystemHost() SystemHost {
	return SystemHost{}
}

func (SystemHost) GetCurrentDirectory() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return tspath.Normalize(dir)
}

func (SystemHost) FileExists(path string) bool {
	info, err := os.Stat(filepath.FromSlash(path))
	return err == nil && !info.IsDir()
}

func (SystemHost) ReadFile(path string) (string, bool) {
	content, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		return "", false
	}
	return string(content), true
}

func (SystemHost) WriteFile(path, content string) error {
	native := filepath.FromSlash(path)
	if err := os.MkdirAll(filepath.Dir(native), 0o755); err != nil {
		return err
	}
	return os.WriteFile(native, []byte(content), 0o644)
}

func (SystemHost) DeleteFile(path string) error {
	return os.Remove(filepath.FromSlash(path))
}

func (SystemHost) GetModifiedTime(path string) (time.Time, bool) {
	info, err := os.Stat(filepath.FromSlash(path))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func (SystemHost) SetModifiedTime(path string, mtime time.Time) error {
	return os.Chtimes(filepath.FromSlash(path), mtime, mtime)
}

func (SystemHost) Now() time.Time {
	return time.Now()
}

// ReadDirectory lists files under dir (recursively) whose name ends in
// one of extensions.
func (SystemHost) ReadDirectory(dir string, extensions []string) []string {
	var files []string
	root := filepath.FromSlash(dir)
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		normalized := tspath.Normalize(path)
		for _, ext := range extensions {
			if tspath.HasExtension(normalized, ext) {
				files = append(files, normalized)
				break
			}
		}
		return nil
	})
	return files
}
