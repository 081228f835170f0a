package pdf

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	oerrors "github.com/lbcm/coursebuild/internal/errors"
	"github.com/lbcm/coursebuild/internal/output"
	"github.com/lbcm/coursebuild/internal/testutil"
)

func writePDF(t *testing.T, dir, name string, pages int) string {
	t.Helper()
	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetTitle(name, true)
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.Text(72, 72, name)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

func run(t *testing.T, gc *cmdtypes.GlobalConfig, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewPDFCmd(gc)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 1)
	b := writePDF(t, dir, "b.pdf", 2)
	out := filepath.Join(dir, "merged", "course.pdf")

	stdout, err := run(t, &cmdtypes.GlobalConfig{}, "merge", out, a, b, "--title", "Part A")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Merged 2 files")
	assert.True(t, testutil.Exists(out))

	stdout, err = run(t, &cmdtypes.GlobalConfig{}, "info", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 pages")
}

func TestMerge_CoverPageBackend(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 1)
	out := filepath.Join(dir, "course.pdf")

	stdout, err := run(t, &cmdtypes.GlobalConfig{Format: output.FormatJSON},
		"merge", out, a, filepath.Join(dir, "missing.pdf"), "--backend", "coverpage")
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, "coverpage", res["backend"])
	assert.EqualValues(t, 1, res["filesMerged"])
	assert.NotEmpty(t, res["warning"])
}

func TestMerge_Errors(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 1)

	t.Run("no backend", func(t *testing.T) {
		_, err := run(t, &cmdtypes.GlobalConfig{}, "merge", filepath.Join(dir, "o.pdf"), a, "--backend", "none")
		var exitErr *cmdtypes.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, cmdtypes.ExitGeneralError, exitErr.Code)
	})

	t.Run("no valid inputs", func(t *testing.T) {
		_, err := run(t, &cmdtypes.GlobalConfig{}, "merge", filepath.Join(dir, "o.pdf"), filepath.Join(dir, "nope.pdf"))
		assert.ErrorIs(t, err, oerrors.ErrValidation)
	})

	t.Run("too few args", func(t *testing.T) {
		_, err := run(t, &cmdtypes.GlobalConfig{}, "merge", filepath.Join(dir, "o.pdf"))
		assert.Error(t, err)
	})
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 2)
	notPDF := testutil.WriteFile(t, dir, "notes.txt", "hello")

	t.Run("json", func(t *testing.T) {
		stdout, err := run(t, &cmdtypes.GlobalConfig{Format: output.FormatJSON}, "info", a)
		require.NoError(t, err)

		var report map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout), &report))
		assert.EqualValues(t, 2, report["totalPages"])
		assert.EqualValues(t, 1, report["totalFiles"])
	})

	t.Run("invalid file exits with failure code", func(t *testing.T) {
		stdout, err := run(t, &cmdtypes.GlobalConfig{}, "info", a, notPDF)
		assert.Contains(t, stdout, "not a PDF file")

		var exitErr *cmdtypes.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, cmdtypes.ExitGeneralError, exitErr.Code)
		assert.True(t, exitErr.Printed)
	})
}
