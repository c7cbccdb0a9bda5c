package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureSubDir_CreatesDirectoryInCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureSubDir("templates")
	require.NoError(t, err)

	want := filepath.Join(tmp, "templates")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureSubDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	first, err := EnsureSubDir("templates")
	require.NoError(t, err)

	second, err := EnsureSubDir("templates")
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestEnsureSubDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("templates", []byte("x"), 0o660))

	_, err := EnsureSubDir("templates")
	require.Error(t, err, "should fail when a file exists with the same name")
}

func TestWritePrivateFile(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	path, err := WritePrivateFile("templates", "../escape.tpl", []byte("data"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "templates", "escape.tpl"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("data"), got)

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}
}
