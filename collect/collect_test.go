package collect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.xml"), `<testsuite name="b"><testcase name="x"/></testsuite>`)
	writeFile(t, filepath.Join(dir, "a.xml"), `<testsuite name="a"><testcase name="x"/></testsuite>`)
	writeFile(t, filepath.Join(dir, "nested", "c.xml"), `<testsuite name="c"><testcase name="x"/></testsuite>`)
	writeFile(t, filepath.Join(dir, "intro.adoc"), "== Intro\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	inputs, err := Find(zerolog.Nop(), dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.xml"),
		filepath.Join(dir, "b.xml"),
		filepath.Join(dir, "nested", "c.xml"),
	}, inputs.ResultFiles)
	require.Equal(t, []string{filepath.Join(dir, "intro.adoc")}, inputs.Documents)

	entries, err := LoadEntries(zerolog.Nop(), inputs)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	suites := Suites(entries)
	require.Len(t, suites, 3)
	require.Equal(t, "a", suites[0].Name)
	require.Equal(t, "b", suites[1].Name)
	require.Equal(t, "c", suites[2].Name)
}

func TestFind_Errors(t *testing.T) {
	empty := t.TempDir()
	_, err := Find(zerolog.Nop(), empty)
	require.True(t, errors.Is(err, ErrNoResultFiles))

	_, err = Find(zerolog.Nop(), filepath.Join(empty, "missing"))
	require.Error(t, err)

	file := filepath.Join(empty, "file.xml")
	writeFile(t, file, "<testsuite/>")
	_, err = Find(zerolog.Nop(), file)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a directory")

	_, err = Find(zerolog.Nop(), "")
	require.Error(t, err)
}

func TestLoadEntries_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.xml"), "<testsuites><testsuite>")

	inputs, err := Find(zerolog.Nop(), dir)
	require.NoError(t, err)

	_, err = LoadEntries(zerolog.Nop(), inputs)
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken.xml")
}
