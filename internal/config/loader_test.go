package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
	assert.Equal(t, DefaultEnvFile, loader.envFile)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		content := `
course:
  title: Linux Fundamentals
  modulesDir: lessons
  outputDir: dist
latex:
  compiler: xelatex
  passes: 3
  timeout: 90s
build:
  mergePdfs: true
pdf:
  backend: coverpage
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().WithEnvFile("").Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "Linux Fundamentals", cfg.Course.Title)
		assert.Equal(t, "lessons", cfg.Course.ModulesDir)
		assert.Equal(t, "dist", cfg.Course.OutputDir)
		assert.Equal(t, "xelatex", cfg.Latex.Compiler)
		assert.Equal(t, 3, cfg.Latex.Passes)
		assert.Equal(t, 90*time.Second, cfg.Latex.Timeout)
		assert.True(t, cfg.Build.MergePDFs)
		assert.Equal(t, "coverpage", cfg.PDF.Backend)
		// untouched keys keep defaults
		assert.Equal(t, "article", cfg.Latex.DocumentClass)
		assert.Equal(t, DefaultPackages(), cfg.Latex.Packages)
	})

	t.Run("returns defaults for missing file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "nonexistent.yaml")

		cfg, err := NewLoader().WithEnvFile("").Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("returns error for malformed yaml", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("course: [unclosed"), 0o644))

		_, err := NewLoader().WithEnvFile("").Load(configFile)
		assert.Error(t, err)
	})

	t.Run("env overrides file", func(t *testing.T) {
		configFile := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("course:\n  outputDir: dist\n"), 0o644))
		t.Setenv("COURSE_OUTPUT_DIR", "/tmp/override")
		t.Setenv("COURSE_PDF_BACKEND", "none")

		cfg, err := NewLoader().WithEnvFile("").Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/tmp/override", cfg.Course.OutputDir)
		assert.Equal(t, "none", cfg.PDF.Backend)
	})
}

func TestLoaderEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("COURSE_COMPILER=lualatex\n"), 0o644))
	t.Setenv("COURSE_COMPILER", "")
	require.NoError(t, os.Unsetenv("COURSE_COMPILER"))

	cfg, err := NewLoader().WithEnvFile(envFile).Load(filepath.Join(tmpDir, "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "lualatex", cfg.Latex.Compiler)
}

func TestLoaderEnvFile_Missing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := NewLoader().WithEnvFile(filepath.Join(tmpDir, ".env")).Load(filepath.Join(tmpDir, "missing.yaml"))

	require.NoError(t, err)
	assert.NotNil(t, cfg)
}
