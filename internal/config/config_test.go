package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/convargs/internal/model"
	"github.com/shinji-kodama/convargs/internal/resolver"
)

const yamlFixture = `name: MyProgram
version: 1.2.3
source_ext: [.TXT, csv]
target_ext: [json]
flags:
  - name: convert
    default: true
    description: Convert the source file
  - name: dry-run
notes:
  - Output is overwritten.
`

// jsoncFixture includes comments and a trailing comma, which are common
// in hand-edited configuration files.
const jsoncFixture = `{
  // program identity
  "name": "jconv",
  "version": "0.1.0",
  "source_ext": ["xml"],
  "target_ext": ["json", "yaml"],
  /* flag registry */
  "flags": [
    {"name": "pretty", "default": true},
    {"name": "help", "description": "Print help"},
    {"name": "version"},
  ],
}`

// writeFixture writes content to name inside a fresh temporary directory.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadFile_YAML verifies YAML decoding and normalization.
func TestLoadFile_YAML(t *testing.T) {
	path := writeFixture(t, ".convargs.yaml", yamlFixture)

	f, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, f.Path)
	assert.Equal(t, "MyProgram", f.Name)
	assert.Equal(t, "1.2.3", f.Version)
	assert.Equal(t, []string{"txt", "csv"}, f.SourceExt, "extensions are lowercased and de-dotted")
	assert.Equal(t, []string{"json"}, f.TargetExt)
	assert.Equal(t, []string{"Output is overwritten."}, f.Notes)

	require.Len(t, f.Flags, 4, "help and version are appended")
	assert.Equal(t, model.Flag{Name: "convert", DefaultEnabled: true, Description: "Convert the source file"}, f.Flags[0])
	assert.Equal(t, "dry-run", f.Flags[1].Name)
	assert.False(t, f.Flags[1].DefaultEnabled)
	assert.Equal(t, model.FlagHelp, f.Flags[2].Name)
	assert.Equal(t, model.FlagVersion, f.Flags[3].Name)
}

// TestLoadFile_JSONC verifies comment stripping and that existing
// help/version entries are not duplicated.
func TestLoadFile_JSONC(t *testing.T) {
	path := writeFixture(t, "tool.jsonc", jsoncFixture)

	f, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "jconv", f.Name)
	assert.Equal(t, []string{"xml"}, f.SourceExt)
	assert.Equal(t, []string{"json", "yaml"}, f.TargetExt)
	require.Len(t, f.Flags, 3)
	assert.Equal(t, "Print help", f.Flags[1].Description)
	assert.True(t, f.Flags[0].DefaultEnabled)
}

// TestLoadFile_NotFound returns a CLIError with ExitConfigNotFound.
func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigNotFound, cliErr.Code)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// TestLoadFile_Invalid covers malformed content and unknown formats.
func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"broken yaml", "c.yaml", "name: [unclosed"},
		{"broken json", "c.json", `{"name": }`},
		{"unsupported extension", "c.toml", `name = "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFixture(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to parse configuration")
		})
	}
}

// TestFind checks the search order of configuration file names.
func TestFind(t *testing.T) {
	dir := t.TempDir()

	_, ok := Find(dir)
	assert.False(t, ok, "empty directory has no configuration")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".convargs.json"), []byte("{}"), 0o644))
	path, ok := Find(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, ".convargs.json"), path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".convargs.yml"), []byte("{}"), 0o644))
	path, ok = Find(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, ".convargs.yml"), path, "YAML takes precedence over JSON")

	// A directory with a configuration name is skipped.
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".convargs.yaml"), 0o755))
	path, ok = Find(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, ".convargs.yml"), path)
}

// TestResolve checks the environment → file → default precedence.
func TestResolve(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		f, err := Resolve(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, Default(), f)
	})

	t.Run("file in directory", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		path := writeFixture(t, ".convargs.yaml", yamlFixture)
		f, err := Resolve(filepath.Dir(path))
		require.NoError(t, err)
		assert.Equal(t, "MyProgram", f.Name)
	})

	t.Run("environment wins", func(t *testing.T) {
		envPath := writeFixture(t, "tool.jsonc", jsoncFixture)
		t.Setenv(EnvConfigPath, envPath)

		dirPath := writeFixture(t, ".convargs.yaml", yamlFixture)
		f, err := Resolve(filepath.Dir(dirPath))
		require.NoError(t, err)
		assert.Equal(t, "jconv", f.Name)
	})

	t.Run("missing environment file", func(t *testing.T) {
		t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Resolve(t.TempDir())
		var cliErr *model.CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, model.ExitConfigNotFound, cliErr.Code)
	})
}

// TestDefault_IsValid ensures the built-in configuration builds a resolver.
func TestDefault_IsValid(t *testing.T) {
	cfg := Default().ResolverConfig("ignored")
	assert.Equal(t, "convargs", cfg.Name)

	_, err := resolver.New(cfg)
	require.NoError(t, err)
}

// TestResolverConfig verifies the conversion and the name fallback.
func TestResolverConfig(t *testing.T) {
	f, err := Decode([]byte(yamlFixture), ".yml")
	require.NoError(t, err)
	f.Name = ""
	f.Usage = "{{.Name}}"

	cfg := f.ResolverConfig("fallback")
	assert.Equal(t, "fallback", cfg.Name)
	assert.Equal(t, "1.2.3", cfg.Version)
	assert.Equal(t, model.ExtensionList{"txt", "csv"}, cfg.SourceExt)
	assert.Equal(t, model.ExtensionList{"json"}, cfg.TargetExt)
	assert.Equal(t, []string{"convert", "dry-run", "help", "version"}, cfg.Flags.Names())
	assert.Equal(t, "{{.Name}}", cfg.UsageTemplate)

	r, err := resolver.New(cfg)
	require.NoError(t, err)
	assert.Equal(t, "fallback", r.HelpText())
}

// TestResolverConfig_Invalid shows that a structurally valid file can still
// describe an invalid tool; the resolver reports it as a ConfigError.
func TestResolverConfig_Invalid(t *testing.T) {
	f, err := Decode([]byte(`{"name": "x", "source_ext": [], "target_ext": ["csv"], "flags": [{"name": "go"}]}`), ".json")
	require.NoError(t, err)

	_, err = resolver.New(f.ResolverConfig("x"))
	var cfgErr *model.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Reason, "source_ext")
}
