package course

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/lbcm/coursebuild/internal/errors"
	"github.com/lbcm/coursebuild/internal/latex"
	"github.com/lbcm/coursebuild/internal/testutil"
)

// recorder builds commands that re-run the test binary as the compiler and
// records the sources it was asked to compile.
type recorder struct {
	sources []string
	failAll bool
	// failModules fails sources whose parent directory is named here.
	failModules map[string]bool
}

func (r *recorder) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	env := []string{"GO_WANT_HELPER_PROCESS=1"}
	if len(args) == 1 && args[0] == "--version" {
		cmd.Env = env
		return cmd
	}

	outDir, src := args[len(args)-2], args[len(args)-1]
	r.sources = append(r.sources, src)
	stem := strings.TrimSuffix(filepath.Base(src), ".tex")
	if r.failAll || r.failModules[filepath.Base(filepath.Dir(src))] {
		env = append(env, "GO_HELPER_EXIT_CODE=1")
	} else {
		env = append(env,
			"GO_HELPER_PDF="+filepath.Join(outDir, stem+".pdf"),
			"GO_HELPER_AUX="+filepath.Join(outDir, stem+".aux"),
		)
	}
	cmd.Env = env
	return cmd
}

// TestHelperProcess stands in for the compiler.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if p := os.Getenv("GO_HELPER_PDF"); p != "" {
		doc := gofpdf.New("P", "pt", "Letter", "")
		doc.AddPage()
		if err := doc.OutputFileAndClose(p); err != nil {
			os.Exit(3)
		}
	}
	if p := os.Getenv("GO_HELPER_AUX"); p != "" {
		_ = os.WriteFile(p, []byte("\\relax\n"), 0o644)
	}
	if os.Getenv("GO_HELPER_EXIT_CODE") == "1" {
		os.Exit(1)
	}
	os.Exit(0)
}

func newBuilder(t *testing.T, courseDir string, rec *recorder, mutate ...func(*Options)) *Builder {
	t.Helper()
	opts := Options{
		ModulesDir:  courseDir,
		OutputDir:   filepath.Join(filepath.Dir(courseDir), "output"),
		TempDir:     t.TempDir(),
		Compiler:    "pdflatex",
		Passes:      2,
		CleanupTemp: true,
		PDFBackend:  "coverpage",
		CommandFunc: rec.command,
	}
	for _, m := range mutate {
		m(&opts)
	}
	b, err := New(opts)
	require.NoError(t, err)
	return b
}

func TestOptions_Validate(t *testing.T) {
	assert.Error(t, Options{OutputDir: "out"}.Validate())
	assert.Error(t, Options{ModulesDir: "m"}.Validate())
	assert.Error(t, Options{ModulesDir: "m", OutputDir: "o", CombinedName: "course.pdf"}.Validate())
	assert.NoError(t, Options{ModulesDir: "m", OutputDir: "o"}.Validate())
}

func TestBuildSingleModule(t *testing.T) {
	course := testutil.Course(t)
	testutil.Module(t, course, "intro", map[string]string{
		"main.tex":        testutil.EnvelopedDocument("Hello."),
		"README.md":       "# Intro\n",
		"images/logo.png": "png",
	})
	rec := &recorder{}
	b := newBuilder(t, course, rec)

	res, err := b.BuildSingleModule(context.Background(), "intro", "")
	require.NoError(t, err)

	out := b.Options().OutputDir
	assert.Equal(t, filepath.Join(out, "main.pdf"), res.OutputPath)
	assert.FileExists(t, res.OutputPath)
	assert.FileExists(t, filepath.Join(out, "images", "logo.png"))
	assert.NoFileExists(t, filepath.Join(out, "main.aux"))
	assert.Equal(t, []string{"intro"}, res.Modules)
	assert.Len(t, res.BuildID, 36)
	require.Len(t, rec.sources, 1)
}

func TestBuildSingleModule_Errors(t *testing.T) {
	course := testutil.Course(t)
	testutil.Module(t, course, "broken", map[string]string{"notes.txt": "x"})
	b := newBuilder(t, course, &recorder{})

	_, err := b.BuildSingleModule(context.Background(), "missing", "")
	assert.ErrorIs(t, err, oerrors.ErrNotFound)

	_, err = b.BuildSingleModule(context.Background(), "broken", "")
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestBuildSingleModule_CompileFailure(t *testing.T) {
	course := testutil.Course(t)
	testutil.ValidModule(t, course, "intro")
	b := newBuilder(t, course, &recorder{failAll: true})

	_, err := b.BuildSingleModule(context.Background(), "intro", "")
	require.Error(t, err)
	assert.True(t, latex.IsKind(err, latex.KindFailed))
	assert.ErrorIs(t, err, oerrors.ErrCompilation)
}

func TestBuildCustomCourse_SkipsInvalidModules(t *testing.T) {
	course := testutil.Course(t)
	testutil.ValidModule(t, course, "intro_to_linux")
	testutil.Module(t, course, "broken", map[string]string{"notes.txt": "no LaTeX here"})
	testutil.ValidModule(t, course, "genomics")
	rec := &recorder{}
	b := newBuilder(t, course, rec)

	res, err := b.BuildCustomCourse(context.Background(), []string{"genomics", "broken", "intro_to_linux"}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"genomics", "intro_to_linux"}, res.Modules)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "broken", res.Skipped[0].Name)
	assert.NotEmpty(t, res.Skipped[0].Errors)
	assert.Equal(t, 2, res.Passes)
	assert.FileExists(t, res.OutputPath)
	assert.Equal(t, "combined_course.pdf", filepath.Base(res.OutputPath))

	// Both passes compile the same combined source.
	require.Len(t, rec.sources, 2)
	assert.Equal(t, rec.sources[0], rec.sources[1])
	assert.NoFileExists(t, filepath.Join(b.Options().OutputDir, "combined_course.aux"))
}

func TestBuildCustomCourse_NoValidModules(t *testing.T) {
	course := testutil.Course(t)
	testutil.Module(t, course, "broken", map[string]string{"notes.txt": "no LaTeX here"})
	rec := &recorder{}
	b := newBuilder(t, course, rec)

	_, err := b.BuildCustomCourse(context.Background(), []string{"broken", "absent"}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
	assert.Empty(t, rec.sources)
}

func TestBuildCompleteCourse(t *testing.T) {
	t.Run("builds all modules in order", func(t *testing.T) {
		course := testutil.Course(t)
		testutil.ValidModule(t, course, "b_second")
		testutil.ValidModule(t, course, "a_first")
		b := newBuilder(t, course, &recorder{})

		res, err := b.BuildCompleteCourse(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a_first", "b_second"}, res.Modules)
	})

	t.Run("missing modules directory", func(t *testing.T) {
		b := newBuilder(t, filepath.Join(t.TempDir(), "nowhere"), &recorder{})
		_, err := b.BuildCompleteCourse(context.Background(), "")
		assert.ErrorIs(t, err, oerrors.ErrNotFound)
	})

	t.Run("empty modules directory", func(t *testing.T) {
		b := newBuilder(t, testutil.Course(t), &recorder{})
		_, err := b.BuildCompleteCourse(context.Background(), "")
		assert.ErrorIs(t, err, oerrors.ErrNotFound)
	})
}

func TestBuildCustomCourse_SeparateMerge(t *testing.T) {
	course := testutil.Course(t)
	testutil.ValidModule(t, course, "intro")
	testutil.ValidModule(t, course, "advanced_topics")
	rec := &recorder{}
	b := newBuilder(t, course, rec, func(o *Options) { o.MergePDFs = true })

	outDir := filepath.Join(t.TempDir(), "custom-out")
	res, err := b.BuildCustomCourse(context.Background(), []string{"intro", "advanced_topics"}, outDir)
	require.NoError(t, err)

	require.NotNil(t, res.Merge)
	assert.Equal(t, 2, res.Merge.FilesMerged)
	assert.NotEmpty(t, res.Merge.Warning)
	assert.Equal(t, filepath.Join(outDir, "combined_course.pdf"), res.OutputPath)
	assert.FileExists(t, res.OutputPath)
	// Two modules, two passes each.
	assert.Len(t, rec.sources, 4)
}

func TestBuildCustomCourse_SeparateSkipsFailedModules(t *testing.T) {
	course := testutil.Course(t)
	testutil.ValidModule(t, course, "intro")
	testutil.ValidModule(t, course, "broken_build")
	testutil.ValidModule(t, course, "wrap_up")
	rec := &recorder{failModules: map[string]bool{"broken_build": true}}
	b := newBuilder(t, course, rec, func(o *Options) { o.MergePDFs = true })

	res, err := b.BuildCustomCourse(context.Background(), []string{"intro", "broken_build", "wrap_up"}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"intro", "wrap_up"}, res.Modules)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "broken_build", res.Skipped[0].Name)
	require.NotNil(t, res.Merge)
	assert.Equal(t, 2, res.Merge.FilesMerged)
	assert.FileExists(t, res.OutputPath)
}

func TestBuildCustomCourse_SeparateAllFail(t *testing.T) {
	course := testutil.Course(t)
	testutil.ValidModule(t, course, "intro")
	testutil.ValidModule(t, course, "wrap_up")
	b := newBuilder(t, course, &recorder{failAll: true}, func(o *Options) { o.MergePDFs = true })

	_, err := b.BuildCustomCourse(context.Background(), []string{"intro", "wrap_up"}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrCompilation)
}

func TestBuildCustomCourse_SeparateWithoutBackend(t *testing.T) {
	course := testutil.Course(t)
	testutil.ValidModule(t, course, "intro")
	b := newBuilder(t, course, &recorder{}, func(o *Options) {
		o.MergePDFs = true
		o.PDFBackend = "none"
	})

	_, err := b.BuildCustomCourse(context.Background(), []string{"intro"}, "")
	assert.ErrorIs(t, err, oerrors.ErrEnvironment)
}

func TestListAndValidate(t *testing.T) {
	course := testutil.Course(t)
	testutil.ValidModule(t, course, "intro")
	testutil.Module(t, course, "broken", map[string]string{"notes.txt": "x"})
	b := newBuilder(t, course, &recorder{})

	mods := b.ListModules()
	require.Len(t, mods, 2)
	assert.Equal(t, "broken", mods[0].Name)
	assert.Equal(t, "intro", mods[1].Name)

	v := b.ValidateAllModules()
	assert.False(t, v.Valid)
	assert.Equal(t, 2, v.TotalModules)
	assert.Equal(t, 1, v.ValidModules)

	info, err := b.ModuleInfo("intro")
	require.NoError(t, err)
	assert.Equal(t, "Module intro.", info.Description)

	_, err = b.ModuleInfo("nope")
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestListModules_MissingDirectory(t *testing.T) {
	b := newBuilder(t, filepath.Join(t.TempDir(), "nowhere"), &recorder{})
	mods := b.ListModules()
	assert.NotNil(t, mods)
	assert.Empty(t, mods)
}
