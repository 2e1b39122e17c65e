// Package usage renders the informational texts of a convargs-based tool:
// the help screen printed for -help and the one-line version banner
// printed for -version.
//
// The help screen is produced from a text/template so embedding programs
// can replace the layout from their configuration file while still getting
// the option table and extension lists computed for them.
package usage

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/shinji-kodama/convargs/internal/model"
)

// DefaultTemplate is the help layout used when Program.Template is empty.
// It mirrors the classic layout of small converters:
//
//	Usage: MyProgram [options] <source_file> [target_file]
//
//	Options:
//	  -convert       Convert the source file to the target format (default)
//	  ...
const DefaultTemplate = `Usage: {{.Name}} [options] <source_file> [target_file]

Options:
{{- range .Options}}
  {{.}}
{{- end}}

File extensions:
  Source: {{.SourceExt}}
  Target: {{.TargetExt}}
{{- if .Notes}}

Notes:
{{- range .Notes}}
  {{.}}
{{- end}}
{{- end}}`

// fallbackName is used when the embedding program did not name itself.
const fallbackName = "program"

// minOptionWidth keeps short option names aligned with the classic layout.
const minOptionWidth = 14

// builtinDescriptions describes the reserved flags when the registry
// leaves their description empty.
var builtinDescriptions = map[string]string{
	model.FlagHelp:    "Show this help message",
	model.FlagVersion: "Show version information",
}

// Program is everything the renderer needs to know about the tool.
type Program struct {
	// Name is the program name shown in the usage line and version banner.
	Name string

	// Version is the program version string.
	Version string

	// SourceExt and TargetExt are listed in the "File extensions" section.
	SourceExt model.ExtensionList
	TargetExt model.ExtensionList

	// Flags are listed in the "Options" section in declaration order.
	Flags model.FlagRegistry

	// Notes are free-form lines listed in the "Notes" section.
	Notes []string

	// Template overrides DefaultTemplate when non-empty.
	Template string
}

// templateData is the value the help template is executed against.
type templateData struct {
	Name      string
	Version   string
	Options   []string
	Flags     model.FlagRegistry
	SourceExt string
	TargetExt string
	Notes     []string
}

// Help renders the help screen. The only error source is a template that
// fails to parse or execute, which is a configuration problem of the tool.
func Help(p Program) (string, error) {
	text := p.Template
	if text == "" {
		text = DefaultTemplate
	}

	tmpl, err := template.New("help").Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse help template: %w", err)
	}

	data := templateData{
		Name:      programName(p.Name),
		Version:   p.Version,
		Options:   FormatOptions(p.Flags),
		Flags:     p.Flags,
		SourceExt: p.SourceExt.String(),
		TargetExt: p.TargetExt.String(),
		Notes:     p.Notes,
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render help template: %w", err)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// Version renders the version banner, e.g. "MyProgram version: 1.0.0".
func Version(p Program) string {
	version := p.Version
	if version == "" {
		version = "unknown"
	}
	return fmt.Sprintf("%s version: %s", programName(p.Name), version)
}

// FormatOptions returns one aligned line per flag: "-name   description".
// Flags that are on by default get a " (default)" suffix.
func FormatOptions(flags model.FlagRegistry) []string {
	width := minOptionWidth
	for _, f := range flags {
		if n := len(f.Name) + 1; n > width {
			width = n
		}
	}

	lines := make([]string, 0, len(flags))
	for _, f := range flags {
		desc := f.Description
		if desc == "" {
			desc = builtinDescriptions[f.Name]
		}
		if f.DefaultEnabled {
			desc = strings.TrimSpace(desc + " (default)")
		}
		lines = append(lines, strings.TrimRight(fmt.Sprintf("%-*s %s", width, "-"+f.Name, desc), " "))
	}
	return lines
}

func programName(name string) string {
	if name == "" {
		return fallbackName
	}
	return name
}
