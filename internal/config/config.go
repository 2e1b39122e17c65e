// Package config loads the description of a convargs-based tool from disk.
//
// A tool configuration names the program, its version, the accepted source
// and target extensions and its flag registry. Two formats are accepted:
//
//   - YAML (.yaml, .yml), parsed with gopkg.in/yaml.v3
//   - JSON with comments (.json, .jsonc), stripped with github.com/tidwall/jsonc
//     and parsed with encoding/json
//
// When no file is present the built-in demo configuration (Default) is used.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/convargs/internal/model"
	"github.com/shinji-kodama/convargs/internal/resolver"
)

// EnvConfigPath names an explicit configuration file. It takes precedence
// over the files searched by Find.
const EnvConfigPath = "CONVARGS_CONFIG"

// FileNames lists the configuration file names searched by Find, in order.
var FileNames = []string{
	".convargs.yaml",
	".convargs.yml",
	".convargs.json",
	".convargs.jsonc",
}

// File is the on-disk representation of a tool configuration.
type File struct {
	// Name is the program name shown in help and version output.
	Name string `json:"name" yaml:"name"`

	// Version is the program version string.
	Version string `json:"version" yaml:"version"`

	// SourceExt lists accepted source extensions; the first is the default.
	// Entries may be written with or without a leading dot.
	SourceExt []string `json:"source_ext" yaml:"source_ext"`

	// TargetExt lists accepted target extensions; the first is the default.
	TargetExt []string `json:"target_ext" yaml:"target_ext"`

	// Flags is the flag registry in declaration order. Missing help and
	// version entries are appended automatically.
	Flags []model.Flag `json:"flags" yaml:"flags"`

	// Notes are extra lines for the help screen.
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// Usage optionally replaces the help template (text/template syntax).
	Usage string `json:"usage,omitempty" yaml:"usage,omitempty"`

	// Path is the file the configuration was loaded from; empty for Default.
	Path string `json:"-" yaml:"-"`
}

// Default returns the demo configuration of a small text converter.
func Default() *File {
	return &File{
		Name:      "convargs",
		Version:   "dev",
		SourceExt: []string{"txt", "csv", "json"},
		TargetExt: []string{"csv", "json", "txt"},
		Flags: []model.Flag{
			{Name: "convert", DefaultEnabled: true, Description: "Convert the source file to the target format"},
			{Name: "translate", DefaultEnabled: true, Description: "Enable translation"},
			{Name: "json", Description: "Print the resolved paths as JSON"},
			{Name: model.FlagHelp},
			{Name: model.FlagVersion},
		},
		Notes: []string{
			"If target_file is omitted, output defaults to source name with the default target extension.",
			"If target_file names an existing directory, the source name is kept inside it.",
		},
	}
}

// LoadFile reads and decodes the configuration at path. The format is
// chosen from the file extension.
//
// Returns a CLIError with ExitConfigNotFound if the file does not exist.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// A missing file gets its own exit code, distinct from a broken one.
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitConfigNotFound,
				fmt.Sprintf("configuration file not found: %s", path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read configuration %s: %w", path, err)
	}

	f, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Decode parses raw configuration bytes. ext selects the format and
// includes the dot (".yaml", ".json", ...).
func Decode(data []byte, ext string) (*File, error) {
	var f File

	// The extension alone selects the decoder; content is never sniffed.
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		// yaml.v3 reads the same field names through the yaml struct tags.
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, err
		}
	case ".json", ".jsonc":
		// Comments and trailing commas are stripped first so hand-edited
		// files stay loadable.
		if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
			return nil, err
		}
	default:
		// Only reachable through $CONVARGS_CONFIG, since Find only returns
		// names from FileNames.
		return nil, fmt.Errorf("unsupported configuration format %q (valid: .yaml, .yml, .json, .jsonc)", ext)
	}

	// Validation happens in resolver.New, for files and code-built
	// configurations alike.
	f.normalize()
	return &f, nil
}

// normalize cleans extension spelling and appends the reserved flags.
func (f *File) normalize() {
	f.SourceExt = model.NewExtensionList(f.SourceExt...)
	f.TargetExt = model.NewExtensionList(f.TargetExt...)

	// help and version are always available, so tool authors may omit them.
	registry := model.FlagRegistry(f.Flags)
	for _, name := range []string{model.FlagHelp, model.FlagVersion} {
		if !registry.Has(name) {
			registry = append(registry, model.Flag{Name: name})
		}
	}
	f.Flags = registry
}

// Find looks for one of FileNames in dir and returns the first match.
// ok is false when none exists.
func Find(dir string) (path string, ok bool) {
	for _, name := range FileNames {
		candidate := filepath.Join(dir, name)
		// A directory named like a config file is skipped and the search
		// continues.
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// Resolve picks the configuration for a run:
//  1. the file named by $CONVARGS_CONFIG, which must exist
//  2. the first of FileNames found in dir
//  3. Default()
func Resolve(dir string) (*File, error) {
	// An explicit path must load; there is no fallback past it.
	if path := os.Getenv(EnvConfigPath); path != "" {
		return LoadFile(path)
	}
	if path, ok := Find(dir); ok {
		return LoadFile(path)
	}
	return Default(), nil
}

// ResolverConfig converts the file into the resolver's configuration.
// Empty Name falls back to fallbackName.
func (f *File) ResolverConfig(fallbackName string) resolver.Config {
	// Files may leave the name out and inherit the binary's name.
	name := f.Name
	if name == "" {
		name = fallbackName
	}
	return resolver.Config{
		Name:          name,
		Version:       f.Version,
		SourceExt:     model.NewExtensionList(f.SourceExt...),
		TargetExt:     model.NewExtensionList(f.TargetExt...),
		Flags:         append(model.FlagRegistry(nil), f.Flags...),
		Notes:         append([]string(nil), f.Notes...),
		UsageTemplate: f.Usage,
	}
}
