// # internal/engine/loader/loader.go
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"pyuml/internal/core/errors"
	"pyuml/internal/engine/model"

	"github.com/gobwas/glob"
)

const DefaultSuffix = ".py"

type Options struct {
	Suffix  string   // File name suffix that marks a source file
	Exclude []string // Glob patterns matched against base names
}

type Loader struct {
	suffix  string
	exclude []glob.Glob
}

func New(opts Options) (*Loader, error) {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}

	compiled := make([]glob.Glob, 0, len(opts.Exclude))
	for _, pattern := range opts.Exclude {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidationError, fmt.Sprintf("invalid exclude pattern %q", pattern))
		}
		compiled = append(compiled, g)
	}

	return &Loader{suffix: suffix, exclude: compiled}, nil
}

// Discover lists the source files directly inside dir.
// os.ReadDir returns entries sorted by file name, so the order is stable
// across platforms.
func (l *Loader) Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		err = errors.WrapPath(err, errors.CodeInputAccess, "read input directory", dir)
		return nil, errors.AddContext(err, errors.CtxOperation, "discover")
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !l.Matches(name) {
			continue
		}
		if l.excluded(name) {
			slog.Debug("skipping excluded file", "file", name)
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths, nil
}

// Matches reports whether name carries the source suffix.
func (l *Loader) Matches(name string) bool {
	return strings.HasSuffix(name, l.suffix)
}

func (l *Loader) Excluded(name string) bool {
	return l.excluded(filepath.Base(name))
}

func (l *Loader) excluded(base string) bool {
	for _, g := range l.exclude {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// ReadUnit reads path into a Unit.
func (l *Loader) ReadUnit(path string) (model.Unit, error) {
	namespace := Namespace(filepath.Base(path))
	content, err := os.ReadFile(path)
	if err != nil {
		err = errors.WrapPath(err, errors.CodeInputAccess, "read source file", path)
		err = errors.AddContext(err, errors.CtxOperation, "read_unit")
		return model.Unit{}, errors.AddContext(err, errors.CtxUnit, namespace)
	}

	return model.Unit{
		Namespace: namespace,
		Path:      path,
		Lines:     SplitLines(string(content)),
	}, nil
}

// Namespace truncates a file name at its first dot.
func Namespace(fileName string) string {
	if idx := strings.IndexByte(fileName, '.'); idx >= 0 {
		return fileName[:idx]
	}
	return fileName
}

// SplitLines splits content on newlines, accepting CRLF. A trailing newline
// does not produce an empty last line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
