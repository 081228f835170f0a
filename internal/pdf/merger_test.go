package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/lbcm/coursebuild/internal/errors"
)

// writePDF writes a real document with the given number of pages.
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

type outlineEntry struct {
	title string
	page  int
}

// readOutline returns the top-level outline of the PDF at path.
func readOutline(t *testing.T, path string) []outlineEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	bms, err := api.Bookmarks(f, model.NewDefaultConfiguration())
	require.NoError(t, err)

	entries := make([]outlineEntry, 0, len(bms))
	for _, b := range bms {
		entries = append(entries, outlineEntry{b.Title, b.PageFrom})
	}
	return entries
}

func TestNewMerger_Negotiation(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		available []Backend
		want      Backend
	}{
		{"auto prefers full", "auto", []Backend{BackendFull, BackendCoverPage}, BackendFull},
		{"empty is auto", "", []Backend{BackendFull, BackendCoverPage}, BackendFull},
		{"auto falls back", "auto", []Backend{BackendCoverPage}, BackendCoverPage},
		{"nothing available", "auto", nil, BackendNone},
		{"explicit coverpage", "coverpage", []Backend{BackendFull, BackendCoverPage}, BackendCoverPage},
		{"explicit full falls back", "full", []Backend{BackendCoverPage}, BackendCoverPage},
		{"explicit none", "none", []Backend{BackendFull, BackendCoverPage}, BackendNone},
		{"unknown acts as auto", "ghostscript", []Backend{BackendFull}, BackendFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMerger(tt.requested, WithAvailable(tt.available...))
			assert.Equal(t, tt.want, m.Backend())
			assert.Equal(t, tt.want != BackendNone, m.IsAvailable())
		})
	}
}

func TestMerger_Capabilities(t *testing.T) {
	full := NewMerger("full")
	assert.True(t, full.Supports(CapPageMerge))
	assert.True(t, full.Supports(CapBookmarks))

	cover := NewMerger("coverpage")
	assert.True(t, cover.Supports(CapMerge))
	assert.False(t, cover.Supports(CapPageMerge))
	assert.False(t, cover.Supports(CapBookmarks))

	none := NewMerger("none")
	assert.Empty(t, none.Capabilities())
}

func TestMerge_Unavailable(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 1)

	_, err := NewMerger("none").Merge([]string{a}, filepath.Join(dir, "out.pdf"), nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindUnavailable))
	assert.ErrorIs(t, err, oerrors.ErrEnvironment)
	assert.NoFileExists(t, filepath.Join(dir, "out.pdf"))
}

func TestMerge_NoValidFiles(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))

	_, err := NewMerger("coverpage").Merge(
		[]string{filepath.Join(dir, "missing.pdf"), txt},
		filepath.Join(dir, "out.pdf"), nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNoValidFiles))
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestMerge_EmptyInput(t *testing.T) {
	for _, backend := range []string{"full", "coverpage"} {
		t.Run(backend, func(t *testing.T) {
			_, err := NewMerger(backend).Merge(nil, filepath.Join(t.TempDir(), "out.pdf"), nil)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindNoValidFiles))
		})
	}
}

func TestMerge_CoverPageSkipsMissingInputs(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 1)
	b := writePDF(t, dir, "b.pdf", 2)
	out := filepath.Join(dir, "merged", "out.pdf")

	m := NewMerger("auto", WithAvailable(BackendCoverPage))
	res, err := m.Merge([]string{a, filepath.Join(dir, "missing.pdf"), b}, out, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, res.FilesMerged)
	assert.Equal(t, BackendCoverPage, res.Backend)
	assert.NotEmpty(t, res.Warning)
	assert.FileExists(t, out)

	info, err := m.Info(out)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Pages)
	assert.Equal(t, "Course Materials", info.Title)
}

func TestMerge_FullConcatenatesPages(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 1)
	b := writePDF(t, dir, "b.pdf", 3)
	out := filepath.Join(dir, "out.pdf")

	m := NewMerger("full")
	res, err := m.Merge([]string{a, b}, out, []string{"Intro", ""})
	require.NoError(t, err)
	assert.Equal(t, 2, res.FilesMerged)
	assert.Empty(t, res.Warning)

	info, err := m.Info(out)
	require.NoError(t, err)
	assert.Equal(t, 4, info.Pages)
	assert.Positive(t, info.Size)
}

func TestMerge_FullBookmarkTitles(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 1)
	b := writePDF(t, dir, "b.pdf", 2)
	c := writePDF(t, dir, "c.pdf", 1)
	out := filepath.Join(dir, "out.pdf")

	res, err := NewMerger("full").Merge(
		[]string{a, filepath.Join(dir, "missing.pdf"), b, c},
		out,
		[]string{"Alpha", "Missing", "", "Gamma"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.FilesMerged)

	assert.Equal(t, []outlineEntry{
		{"Alpha", 1},
		{"b", 2},
		{"Gamma", 4},
	}, readOutline(t, out))
}

func TestAddBookmarks(t *testing.T) {
	dir := t.TempDir()
	doc := writePDF(t, dir, "doc.pdf", 3)

	t.Run("full backend ignores out of range pages", func(t *testing.T) {
		n, err := NewMerger("full").AddBookmarks(doc, []Bookmark{
			{Title: "Start", Page: 0},
			{Title: "End", Page: 2},
			{Title: "Beyond", Page: 7},
			{Title: "Negative", Page: -1},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("full backend accepts unordered pages", func(t *testing.T) {
		unordered := writePDF(t, dir, "unordered.pdf", 3)
		n, err := NewMerger("full").AddBookmarks(unordered, []Bookmark{
			{Title: "Third", Page: 2},
			{Title: "First", Page: 0},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		assert.Equal(t, []outlineEntry{{"First", 1}, {"Third", 3}}, readOutline(t, unordered))
	})

	t.Run("coverpage backend lacks capability", func(t *testing.T) {
		_, err := NewMerger("coverpage").AddBookmarks(doc, []Bookmark{{Title: "Start"}})
		require.Error(t, err)
		assert.True(t, IsKind(err, KindCapability))
	})
}

func TestInfo_Backends(t *testing.T) {
	dir := t.TempDir()
	doc := writePDF(t, dir, "doc.pdf", 2)

	for _, backend := range []string{"full", "coverpage"} {
		t.Run(backend, func(t *testing.T) {
			info, err := NewMerger(backend).Info(doc)
			require.NoError(t, err)
			assert.Equal(t, 2, info.Pages)
			assert.Equal(t, doc, info.Path)
			assert.Positive(t, info.Size)
		})
	}

	_, err := NewMerger("full").Info(filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)
}

func TestValidatePDFs(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 2)
	b := writePDF(t, dir, "b.pdf", 1)
	txt := filepath.Join(dir, "readme.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	missing := filepath.Join(dir, "gone.pdf")

	report, err := NewMerger("full").ValidatePDFs([]string{a, missing, txt, b})
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalFiles)
	assert.Len(t, report.Valid, 2)
	require.Len(t, report.Invalid, 2)
	assert.Equal(t, "file not found", report.Invalid[0].Reason)
	assert.Equal(t, "not a PDF file", report.Invalid[1].Reason)
	assert.Equal(t, 3, report.TotalPages)
	assert.Equal(t, report.Valid[0].Size+report.Valid[1].Size, report.TotalSize)
}
