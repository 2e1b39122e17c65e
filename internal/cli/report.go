package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shinji-kodama/convargs/internal/model"
)

// jsonFlag selects JSON output when the active configuration registers it.
const jsonFlag = "json"

// directoryModeLabel replaces the empty target in text output.
const directoryModeLabel = "(directory mode)"

// reportJSON is the JSON shape of a successful resolution.
type reportJSON struct {
	Source        string          `json:"source"`
	Target        string          `json:"target"`
	DirectoryMode bool            `json:"directoryMode"`
	Flags         map[string]bool `json:"flags"`
}

// printReport outputs the resolved paths and flags in text or JSON format,
// depending on the "json" flag of the outcome.
func printReport(w io.Writer, out model.Outcome) error {
	if out.Flags.Enabled(jsonFlag) {
		return printReportJSON(w, out)
	}
	printReportText(w, out)
	return nil
}

// printReportJSON outputs the resolution as structured JSON.
func printReportJSON(w io.Writer, out model.Outcome) error {
	result := reportJSON{
		Source:        out.Paths.Source,
		Target:        out.Paths.Target,
		DirectoryMode: out.Paths.IsDirectoryMode(),
		Flags:         out.Flags.Map(),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printReportText outputs the resolution as human-readable text.
//
//	source: /work/source.txt
//	target: /work/source.csv
//	flags:  convert=on translate=on json=off help=off version=off
func printReportText(w io.Writer, out model.Outcome) {
	target := out.Paths.Target
	if out.Paths.IsDirectoryMode() {
		target = directoryModeLabel
	}

	_, _ = fmt.Fprintf(w, "source: %s\n", out.Paths.Source)
	_, _ = fmt.Fprintf(w, "target: %s\n", target)
	_, _ = fmt.Fprintf(w, "flags:  %s\n", FormatFlags(out.Flags))
}

// FormatFlags renders flag states as "name=on name=off ..." in
// declaration order.
func FormatFlags(flags model.FlagStates) string {
	parts := make([]string, 0, flags.Len())
	for _, name := range flags.Names() {
		state := "off"
		if flags.Enabled(name) {
			state = "on"
		}
		parts = append(parts, name+"="+state)
	}
	return strings.Join(parts, " ")
}
