package combine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbcm/coursebuild/internal/testutil"
)

func newManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m, err := New(t.TempDir(), opts...)
	require.NoError(t, err)
	return m
}

func TestCreateDocument(t *testing.T) {
	m := newManager(t)

	path, err := m.CreateDocument("Hello world.", "notes")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(m.Dir(), "notes.tex"), path)
	content := testutil.ReadFile(t, path)
	assert.True(t, strings.HasPrefix(content, "\\documentclass{article}\n"))
	assert.Contains(t, content, "\\usepackage[utf8]{inputenc}\n")
	assert.Contains(t, content, "\\usepackage[margin=1in]{geometry}\n")
	assert.Contains(t, content, "\\usepackage{hyperref}\n")
	assert.Contains(t, content, "\\begin{document}\n\nHello world.\n\n\\end{document}\n")
	assert.Less(t, strings.Index(content, "inputenc"), strings.Index(content, "xcolor"))
}

func TestCreateDocument_CustomClassAndPackages(t *testing.T) {
	m := newManager(t, WithDocumentClass("report"), WithPackages([]string{"tikz"}))

	path, err := m.CreateDocument("Body", "custom.ltx")
	require.NoError(t, err)

	assert.Equal(t, ".ltx", filepath.Ext(path))
	content := testutil.ReadFile(t, path)
	assert.Contains(t, content, "\\documentclass{report}")
	assert.Contains(t, content, "\\usepackage{tikz}")
	assert.NotContains(t, content, "hyperref")
}

func TestCreateDocument_UnwritableDir(t *testing.T) {
	m := newManager(t)
	require.NoError(t, os.RemoveAll(m.Dir()))

	_, err := m.CreateDocument("Body", "x.tex")
	assert.Error(t, err)
}

func TestUsePackage(t *testing.T) {
	assert.Equal(t, "[utf8]{inputenc}", usePackage("inputenc{utf8}"))
	assert.Equal(t, "{amsmath}", usePackage("amsmath"))
}

func TestExtractBody(t *testing.T) {
	enveloped := "\\documentclass{article}\n\\begin{document}\n  Body text  \n\\end{document}\n"
	assert.Equal(t, "Body text", ExtractBody(enveloped))

	bare := "\\subsection{Intro}\nText\n"
	assert.Equal(t, bare, ExtractBody(bare))

	onlyBegin := "\\begin{document}\nText"
	assert.Equal(t, onlyBegin, ExtractBody(onlyBegin))
}

func TestCombineModules_PreservesCallerOrder(t *testing.T) {
	course := testutil.Course(t)
	a := testutil.Module(t, course, "alpha_module", map[string]string{"main.tex": testutil.EnvelopedDocument("ALPHA BODY")})
	b := testutil.Module(t, course, "beta_module", map[string]string{"module.tex": testutil.EnvelopedDocument("BETA BODY")})
	c := testutil.Module(t, course, "gamma_module", map[string]string{"gamma_module.tex": "GAMMA BODY"})

	m := newManager(t)

	forward, err := m.CombineModules([]string{a, b, c}, "forward.tex")
	require.NoError(t, err)
	assertOrder(t, testutil.ReadFile(t, forward),
		"\\section{Alpha Module}", "ALPHA BODY",
		"\\section{Beta Module}", "BETA BODY",
		"\\section{Gamma Module}", "GAMMA BODY")

	reverse, err := m.CombineModules([]string{c, b, a}, "reverse.tex")
	require.NoError(t, err)
	assertOrder(t, testutil.ReadFile(t, reverse),
		"\\section{Gamma Module}", "\\section{Beta Module}", "\\section{Alpha Module}")
}

func TestCombineModules_StripsModulePreamble(t *testing.T) {
	course := testutil.Course(t)
	a := testutil.Module(t, course, "intro", map[string]string{"main.tex": testutil.EnvelopedDocument("Only this")})

	path, err := newManager(t).CombineModules([]string{a}, "")
	require.NoError(t, err)

	assert.Equal(t, DefaultCombinedName, filepath.Base(path))
	content := testutil.ReadFile(t, path)
	assert.Equal(t, 1, strings.Count(content, "\\documentclass"))
	assert.Equal(t, 1, strings.Count(content, "\\begin{document}"))
	assert.Contains(t, content, "\\section{Intro}\nOnly this\n")
}

func TestCombineModules_SkipsUnresolvable(t *testing.T) {
	course := testutil.Course(t)
	good := testutil.Module(t, course, "good", map[string]string{"main.tex": "GOOD"})
	empty := testutil.Module(t, course, "empty", map[string]string{"README.md": "# Empty"})
	file := testutil.WriteFile(t, course, "loose_notes.tex", "LOOSE")

	path, err := newManager(t).CombineModules(
		[]string{empty, good, filepath.Join(course, "missing"), file}, "out.tex")
	require.NoError(t, err)

	content := testutil.ReadFile(t, path)
	assert.NotContains(t, content, "\\section{Empty}")
	assert.NotContains(t, content, "\\section{Missing}")
	assertOrder(t, content, "\\section{Good}", "GOOD", "\\section{Loose Notes}", "LOOSE")
}

func TestCopyResources(t *testing.T) {
	src := t.TempDir()
	testutil.WriteFile(t, src, "images/logo.png", "png")
	testutil.WriteFile(t, src, "images/nested/diagram.PDF", "pdf")
	testutil.WriteFile(t, src, "main.tex", "tex")
	dst := filepath.Join(t.TempDir(), "out")

	copied, err := CopyResources(src, dst)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(dst, "images", "logo.png"),
		filepath.Join(dst, "images", "nested", "diagram.PDF"),
	}, copied)
	assert.Equal(t, "png", testutil.ReadFile(t, filepath.Join(dst, "images", "logo.png")))
	assert.NoFileExists(t, filepath.Join(dst, "main.tex"))
}

func TestCopyResources_CustomExtensions(t *testing.T) {
	src := t.TempDir()
	testutil.WriteFile(t, src, "data/table.csv", "a,b")
	testutil.WriteFile(t, src, "images/logo.png", "png")
	dst := t.TempDir()

	copied, err := CopyResources(src, dst, ".csv")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dst, "data", "table.csv")}, copied)
}

func TestCopyResources_MissingSource(t *testing.T) {
	copied, err := CopyResources(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, copied)
}

func TestCleanTempFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.aux", "a.log", "a.pdf", "sub/b.toc", "sub/b.fdb_latexmk", "a.tex"} {
		testutil.WriteFile(t, dir, name, "x")
	}

	CleanTempFiles(dir)

	assert.FileExists(t, filepath.Join(dir, "a.pdf"))
	assert.FileExists(t, filepath.Join(dir, "a.tex"))
	assert.NoFileExists(t, filepath.Join(dir, "a.aux"))
	assert.NoFileExists(t, filepath.Join(dir, "a.log"))
	assert.NoFileExists(t, filepath.Join(dir, "sub", "b.toc"))
	assert.NoFileExists(t, filepath.Join(dir, "sub", "b.fdb_latexmk"))
}

func TestManagerOwnsTempDir(t *testing.T) {
	m, err := New("")
	require.NoError(t, err)
	dir := m.Dir()
	assert.DirExists(t, dir)

	require.NoError(t, m.Close())
	assert.NoDirExists(t, dir)
	require.NoError(t, m.Close())

	shared := t.TempDir()
	m, err = New(shared)
	require.NoError(t, err)
	require.NoError(t, m.Close())
	assert.DirExists(t, shared)
}

// assertOrder checks that each needle appears after the previous one.
func assertOrder(t *testing.T, content string, needles ...string) {
	t.Helper()
	pos := 0
	for _, n := range needles {
		idx := strings.Index(content[pos:], n)
		if !assert.GreaterOrEqual(t, idx, 0, "%q missing or out of order", n) {
			return
		}
		pos += idx + len(n)
	}
}
