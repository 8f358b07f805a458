package fileutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookjan/internal/testutil"
)

func TestFileExists(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("present.pdf", "content")
	env.MkdirAll("somedir")

	assert.True(t, FileExists(env.Path("present.pdf")))
	assert.False(t, FileExists(env.Path("missing.pdf")))
	assert.False(t, FileExists(env.Path("somedir")), "directories are not files")
}

func TestDirExists(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.MkdirAll("somedir")
	env.WriteFileString("afile.pdf", "content")

	assert.True(t, DirExists(env.Path("somedir")))
	assert.False(t, DirExists(env.Path("missing")))
	assert.False(t, DirExists(env.Path("afile.pdf")), "files are not directories")
}

func TestListPDFs(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("inbox/b.pdf", "b")
	env.WriteFileString("inbox/a.PDF", "a")
	env.WriteFileString("inbox/notes.txt", "text")
	env.WriteFileString("inbox/nested/c.pdf", "c")

	paths, err := ListPDFs(env.Path("inbox"))
	require.NoError(t, err)

	want := []string{
		env.Path("inbox/a.PDF"),
		env.Path("inbox/b.pdf"),
	}
	assert.Equal(t, want, paths)
}

func TestListPDFsMissingDir(t *testing.T) {
	env := testutil.NewTestEnv(t)

	_, err := ListPDFs(env.Path("no-such-dir"))
	assert.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("src.pdf", "original content")

	err := CopyFile(env.Path("src.pdf"), env.Path("out/dst.pdf"))
	require.NoError(t, err)

	assert.Equal(t, "original content", env.ReadFileString("out/dst.pdf"))
	env.RequireFileExists("src.pdf")
}

func TestCopyFileRefusesOverwrite(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("src.pdf", "new")
	env.WriteFileString("dst.pdf", "existing")

	err := CopyFile(env.Path("src.pdf"), env.Path("dst.pdf"))
	assert.Error(t, err)
	assert.Equal(t, "existing", env.ReadFileString("dst.pdf"))
}

func TestMoveFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("src.pdf", "moved content")

	err := MoveFile(env.Path("src.pdf"), env.Path("out/dst.pdf"))
	require.NoError(t, err)

	assert.Equal(t, "moved content", env.ReadFileString("out/dst.pdf"))
	env.RequireFileNotExists("src.pdf")
}

func TestMoveFileRefusesOverwrite(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("src.pdf", "new")
	env.WriteFileString("dst.pdf", "existing")

	err := MoveFile(env.Path("src.pdf"), env.Path("dst.pdf"))
	assert.Error(t, err)
	env.RequireFileExists("src.pdf")
	assert.Equal(t, "existing", env.ReadFileString("dst.pdf"))
}

func TestWriteJSONFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("export/records.json")

	written, err := WriteJSONFile(map[string]string{"title": "Test Book"}, path, false)
	require.NoError(t, err)
	assert.True(t, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"title": "Test Book"`)
}

func TestWriteJSONFileSkipsExisting(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("records.json", "{}")

	written, err := WriteJSONFile(map[string]string{"a": "b"}, env.Path("records.json"), false)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, "{}", env.ReadFileString("records.json"))

	written, err = WriteJSONFile(map[string]string{"a": "b"}, env.Path("records.json"), true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.NotEqual(t, "{}", env.ReadFileString("records.json"))
}

func TestWriteJSONFileUnmarshalable(t *testing.T) {
	env := testutil.NewTestEnv(t)

	written, err := WriteJSONFile(func() {}, env.Path("bad.json"), false)
	assert.Error(t, err)
	assert.False(t, written)
}
