package loader

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"pyuml/internal/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"zoo.py":       "class Zoo:\n",
		"animals.py":   "class Animal:\n",
		"README.md":    "# docs\n",
		"notes.py.txt": "not python\n",
		"test_zoo.py":  "class TestZoo:\n",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "pkg.py"), 0o755))

	l, err := New(Options{Exclude: []string{"test_*.py"}})
	require.NoError(t, err)

	paths, err := l.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "animals.py"),
		filepath.Join(dir, "zoo.py"),
	}, paths)
}

func TestDiscoverCustomSuffix(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.pyi": "", "b.py": ""})

	l, err := New(Options{Suffix: ".pyi"})
	require.NoError(t, err)

	paths, err := l.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.pyi")}, paths)
}

func TestDiscoverMissingDirectory(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)

	_, err = l.Discover(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInputAccess), "got %v", err)
	assert.Contains(t, err.Error(), "operation=discover")
}

func TestNewRejectsBadPattern(t *testing.T) {
	_, err := New(Options{Exclude: []string{"[unclosed"}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidationError))
}

func TestReadUnit(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"pets.models.py": "class Dog:\r\n    name: str\r\n"})

	l, err := New(Options{})
	require.NoError(t, err)

	unit, err := l.ReadUnit(filepath.Join(dir, "pets.models.py"))
	require.NoError(t, err)
	assert.Equal(t, "pets", unit.Namespace)
	assert.Equal(t, []string{"class Dog:", "    name: str"}, unit.Lines)
}

func TestReadUnitMissingFile(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "gone.py")
	_, err = l.ReadUnit(path)
	assert.True(t, errors.IsCode(err, errors.CodeInputAccess))

	var de *errors.DomainError
	require.True(t, stderrors.As(err, &de))
	assert.Equal(t, "gone", de.Context[errors.CtxUnit])
	assert.Equal(t, "read_unit", de.Context[errors.CtxOperation])
	assert.Equal(t, path, de.Context[errors.CtxPath])
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, "pets", Namespace("pets.py"))
	assert.Equal(t, "a", Namespace("a.b.py"))
	assert.Equal(t, "noext", Namespace("noext"))
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\nb"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb\n"))
}
