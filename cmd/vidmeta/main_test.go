package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vidmeta/internal/config"
	vmerrors "github.com/five82/vidmeta/internal/errors"
)

// clearEnv isolates a test from VIDMETA_* variables set by the caller.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"VIDMETA_SOURCE_DIR", "VIDMETA_OUTPUT", "VIDMETA_FFPROBE",
		"VIDMETA_PROBE_TIMEOUT", "VIDMETA_BACKEND", "VIDMETA_LOG_LEVEL", "VIDMETA_LOG_FILE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "vidmeta version "+appVersion+"\n", stdout)

	stdout, _, err = execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "vidmeta version "+appVersion+"\n", stdout)
}

func TestScan_MissingDirectoryWritesNothing(t *testing.T) {
	clearEnv(t)
	output := filepath.Join(t.TempDir(), "metadata.json")
	missing := filepath.Join(t.TempDir(), "missing")

	_, stderr, err := execute(t, "scan", missing, "-o", output, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Source directory does not exist")

	_, statErr := os.Stat(output)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestScan_InvalidConfiguration(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"negative timeout", []string{"scan", t.TempDir(), "--timeout", "-5s"}},
		{"unknown backend", []string{"scan", t.TempDir(), "--backend", "gstreamer"}},
		{"json to stdout twice", []string{"scan", t.TempDir(), "--json", "-o", "-"}},
		{"missing config file", []string{"scan", t.TempDir(), "-c", filepath.Join(t.TempDir(), "nope.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, vmerrors.IsKind(err, vmerrors.KindConfig), "error = %v", err)
		})
	}
}

func TestScan_TooManyArgs(t *testing.T) {
	_, _, err := execute(t, "scan", "a", "b")
	assert.Error(t, err)
}

func TestResolveConfig_Precedence(t *testing.T) {
	clearEnv(t)

	cfgFile := filepath.Join(t.TempDir(), "vidmeta.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(strings.Join([]string{
		"source_dir: /from/file",
		"output: file.json",
		"ffprobe: /file/ffprobe",
		"probe_timeout: 10s",
		"backend: transcoder",
		"",
	}, "\n")), 0644))

	t.Setenv("VIDMETA_OUTPUT", "env.json")

	cmd := newScanCmd(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags([]string{"-c", cfgFile, "--timeout", "3s", "-v"}))

	var sa scanArgs
	sa.configPath = cfgFile
	sa.timeout = 3 * time.Second
	sa.verbose = true

	cfg, err := resolveConfig(cmd, sa, nil)
	require.NoError(t, err)

	assert.Equal(t, "/from/file", cfg.SourceDir)
	assert.Equal(t, "env.json", cfg.OutputPath)
	assert.Equal(t, "/file/ffprobe", cfg.FFprobePath)
	assert.Equal(t, 3*time.Second, cfg.ProbeTimeout.Std())
	assert.Equal(t, config.BackendTranscoder, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)

	cfg, err = resolveConfig(cmd, sa, []string{"/from/arg"})
	require.NoError(t, err)
	assert.Equal(t, "/from/arg", cfg.SourceDir)
}

func TestResolveConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cmd := newScanCmd(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags(nil))

	cfg, err := resolveConfig(cmd, scanArgs{}, nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSourceDir, cfg.SourceDir)
	assert.Equal(t, config.DefaultOutputPath, cfg.OutputPath)
	assert.Equal(t, config.DefaultFFprobePath, cfg.FFprobePath)
	assert.Equal(t, config.DefaultProbeTimeout, cfg.ProbeTimeout.Std())
	assert.Equal(t, config.BackendCLI, cfg.Backend)
}
