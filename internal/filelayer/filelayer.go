package filelayer

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// Entry is one file or directory found by Walk.
type Entry struct {
	FullPath string
	Basename string
	IsDir    bool
}

// FileLayer is the file-system surface the Workspace Coordinator consumes.
// Directory walks must skip entries whose basename starts with ".".
type FileLayer interface {
	Stat(path string) (os.FileInfo, error)
	Exists(path string) (bool, error)
	ReadTextFile(path string) (string, error)
	WriteTextFile(path string, content string) error
	Mkdirp(path string) error
	Rm(path string) error
	Walk(root string) ([]Entry, error)
}

// Afero wraps an afero.Fs to satisfy FileLayer. Use afero.NewOsFs() for a
// real filesystem or afero.NewMemMapFs() in tests.
type Afero struct {
	FS afero.Fs
}

// New returns a FileLayer backed by fs.
func New(fs afero.Fs) *Afero {
	return &Afero{FS: fs}
}

func (a *Afero) Stat(path string) (os.FileInfo, error) {
	return a.FS.Stat(path)
}

func (a *Afero) Exists(path string) (bool, error) {
	return afero.Exists(a.FS, path)
}

func (a *Afero) ReadTextFile(path string) (string, error) {
	data, err := afero.ReadFile(a.FS, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (a *Afero) WriteTextFile(path string, content string) error {
	if err := a.Mkdirp(filepath.Dir(path)); err != nil {
		return err
	}
	return afero.WriteFile(a.FS, path, []byte(content), 0o644)
}

func (a *Afero) Mkdirp(path string) error {
	return a.FS.MkdirAll(path, 0o755)
}

func (a *Afero) Rm(path string) error {
	return a.FS.Remove(path)
}

// Walk recursively lists every file and directory under root, skipping any
// entry (and its descendants, for a directory) whose basename starts with
// ".".
func (a *Afero) Walk(root string) ([]Entry, error) {
	var entries []Entry
	err := afero.Walk(a.FS, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && path != root {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		entries = append(entries, Entry{FullPath: path, Basename: base, IsDir: info.IsDir()})
		return nil
	})
	return entries, err
}

// LastModified returns path's modification time as reported by fs.Stat.
// The Workspace Coordinator builds its parse-cache keys from
// FileLayer.Stat directly and does not call this helper.
func LastModified(fs afero.Fs, path string) (time.Time, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
