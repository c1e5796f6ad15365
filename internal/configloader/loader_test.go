package configloader

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/webstego/pkg/config"
	_ "github.com/yaklabco/webstego/pkg/method/builtin" // Register methods
)

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, []string{config.DefaultMethod}, result.Config.Methods)
	assert.Equal(t, "auto", result.Config.Grammar)
	assert.True(t, result.Config.VerifyEnabled())
	assert.True(t, result.Config.BackupsEnabled())
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".webstego.yml"), `
methods: [TrailingSpace, colon]
grammar: css
verify: false
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, []string{"trailing-space", "colon-spacing"}, result.Config.Methods)
	assert.Equal(t, "css", result.Config.Grammar)
	assert.False(t, result.Config.VerifyEnabled())
	assert.True(t, result.Config.BackupsEnabled(), "unset fields keep their defaults")
	assert.Len(t, result.LoadedFrom, 1)
}

func TestLoad_ProjectConfigFromParent(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, "webstego.yaml"), "jobs: 3\n")
	nested := filepath.Join(tmpDir, "site", "css")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	result, err := Load(context.Background(), isolated(nested))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Config.Jobs)
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".webstego.yml"), "jobs: 3\n")
	repo := filepath.Join(tmpDir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	result, err := Load(context.Background(), isolated(repo))
	require.NoError(t, err)
	assert.Zero(t, result.Config.Jobs)
	assert.Empty(t, result.Paths.Project)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".webstego.yml"), "format: text\njobs: 2\n")
	customPath := filepath.Join(tmpDir, "custom.yml")
	writeConfig(t, customPath, "format: json\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, 2, result.Config.Jobs, "project values survive where explicit config is silent")
	assert.Equal(t, []string{filepath.Join(tmpDir, ".webstego.yml"), customPath}, result.LoadedFrom)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".webstego.yml"), `
methods: [sorting]
backups:
  enabled: true
`)

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Methods: []string{"quotemark"},
		Backups: config.BackupsConfig{Enabled: config.Bool(false)},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"quotemark"}, result.Config.Methods)
	assert.False(t, result.Config.BackupsEnabled())
}

func TestLoad_Env(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, filepath.Join(tmpDir, ".webstego.yml"), "grammar: html\n")

	t.Setenv("WEBSTEGO_METHODS", "quote, sort")
	t.Setenv("WEBSTEGO_VERIFY", "false")
	t.Setenv("WEBSTEGO_JOBS", "6")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"quotemark", "sorting"}, result.Config.Methods)
	assert.False(t, result.Config.VerifyEnabled())
	assert.Equal(t, 6, result.Config.Jobs)
	assert.Equal(t, "html", result.Config.Grammar)
}

func TestLoad_EnvInvalid(t *testing.T) {
	t.Setenv("WEBSTEGO_VERIFY", "maybe")

	opts := isolated(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEBSTEGO_VERIFY")
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "unknown method", content: "methods: [invisible-ink]\n", wantErr: "unknown method"},
		{name: "conflicting methods", content: "methods: [double-space, quotemark]\n", wantErr: "must be used alone"},
		{name: "empty methods", content: "methods: []\n", wantErr: "no method selected"},
		{name: "grammar", content: "grammar: markdown\n", wantErr: "invalid grammar"},
		{name: "format", content: "format: sarif\n", wantErr: "invalid format"},
		{name: "backup mode", content: "backups:\n  mode: xdg\n", wantErr: "invalid backup mode"},
		{name: "negative jobs", content: "jobs: -1\n", wantErr: "jobs must be >= 0"},
		{name: "bad glob", content: "ignore: [\"[\"]\n", wantErr: "invalid glob pattern"},
		{name: "unknown field", content: "flavor: gfm\n", wantErr: "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, ".webstego.yml")
			writeConfig(t, path, tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_WarnsDuplicateMethods(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.CLIConfig = &config.Config{Methods: []string{"sorting", "sort", "quotemark"}}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"sorting", "quotemark"}, result.Config.Methods)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `"sorting" and "sort"`)
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	merged := MergeAll(
		config.NewConfig(),
		&config.Config{Verify: config.Bool(false), Jobs: 2},
		&config.Config{Grammar: "css"},
	)
	assert.False(t, merged.VerifyEnabled())
	assert.Equal(t, 2, merged.Jobs)
	assert.Equal(t, "css", merged.Grammar)
	assert.Equal(t, []string{config.DefaultMethod}, merged.Methods)

	assert.Nil(t, MergeAll())
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := Confirm(strings.NewReader(tt.input), &out, "Overwrite?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Overwrite? [y/N] ", out.String())
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Contains(t, vars, "WEBSTEGO_METHODS")
	assert.Equal(t, "WEBSTEGO_BACKUPS_MODE", GetEnvVarName("backups.mode"))
	assert.Empty(t, GetEnvVarName("flavor"))
}
