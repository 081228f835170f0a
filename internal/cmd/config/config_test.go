package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbcm/coursebuild/internal/cmdtypes"
	coreconfig "github.com/lbcm/coursebuild/internal/config"
	"github.com/lbcm/coursebuild/internal/output"
)

func globalsFor(path string) *cmdtypes.GlobalConfig {
	return &cmdtypes.GlobalConfig{ConfigPath: path}
}

func TestNewConfigInitCmd(t *testing.T) {
	cmd := NewConfigInitCmd(&cmdtypes.GlobalConfig{})

	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}

func TestConfigInit_CreatesValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	var out bytes.Buffer
	cmd := NewConfigInitCmd(globalsFor(path))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, path)
	assert.Contains(t, out.String(), "Config file created")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "modulesDir: modules")
	assert.Contains(t, string(content), "compiler: pdflatex")

	v, err := coreconfig.NewValidator()
	require.NoError(t, err)
	assert.NoError(t, v.ValidateFile(path))
}

func TestConfigInit_ExistingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("# existing config\n"), 0o644))

	cmd := NewConfigInitCmd(globalsFor(path))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestConfigInit_ForceOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("# old config\n"), 0o644))

	cmd := NewConfigInitCmd(globalsFor(path))
	cmd.SetArgs([]string{"--force"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "old config")
}

func TestConfigVet(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		cmd := NewConfigVetCmd(globalsFor(filepath.Join(dir, "missing.yaml")))
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		err := cmd.Execute()
		var exitErr *cmdtypes.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, cmdtypes.ExitGeneralError, exitErr.Code)
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("latex:\n  passes: 0\npdf:\n  backend: ghostscript\n"), 0o644))

		var stderr bytes.Buffer
		cmd := NewConfigVetCmd(globalsFor(path))
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&stderr)

		err := cmd.Execute()
		var exitErr *cmdtypes.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, cmdtypes.ExitGeneralError, exitErr.Code)
		assert.True(t, exitErr.Printed)
		assert.Contains(t, stderr.String(), "latex.passes")
		assert.Contains(t, stderr.String(), "pdf.backend")
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "good.yaml")
		require.NoError(t, os.WriteFile(path, []byte("course:\n  modulesDir: lectures\n"), 0o644))

		var out bytes.Buffer
		cmd := NewConfigVetCmd(globalsFor(path))
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "Config file is valid")
	})
}

func TestConfigShow(t *testing.T) {
	cfg := coreconfig.DefaultConfig()
	gc := &cmdtypes.GlobalConfig{
		Config:     cfg,
		ModulesDir: "lectures",
		Format:     output.FormatJSON,
	}

	var out bytes.Buffer
	cmd := NewConfigShowCmd(gc)
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"modulesDir": "lectures"`)
}
