// Package model defines the domain types for the convargs argument resolver.
//
// These types are shared between the resolver, the configuration loader and
// the CLI layer. They are transient: a resolver produces a fresh set of
// FlagStates and ResolvedPaths on every parse call, and nothing is persisted.
package model

import (
	"fmt"
	"strings"
)

// Reserved flag names. Every flag registry must contain both of them.
const (
	FlagHelp    = "help"
	FlagVersion = "version"
)

// Flag is a single boolean switch understood by the resolver.
//
// A flag is identified by its Name. On the command line it may be written
// as "-name" or "--name". Flags declared with DefaultEnabled return to "on"
// at the start of every parse, not to "off".
type Flag struct {
	// Name is the flag identifier, matched case-sensitively.
	Name string `json:"name" yaml:"name"`

	// DefaultEnabled is the state the flag is reset to before each parse.
	DefaultEnabled bool `json:"default" yaml:"default"`

	// Description is shown next to the flag in the help text.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// FlagRegistry is the ordered set of flags a program accepts.
// Declaration order is kept because the help text lists flags in that order.
type FlagRegistry []Flag

// Lookup returns the flag with the given name.
func (r FlagRegistry) Lookup(name string) (Flag, bool) {
	for _, f := range r {
		if f.Name == name {
			return f, true
		}
	}
	return Flag{}, false
}

// Has reports whether a flag with the given name is registered.
func (r FlagRegistry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the flag names in declaration order.
func (r FlagRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for _, f := range r {
		names = append(names, f.Name)
	}
	return names
}

// Validate checks the registry invariants: non-empty unique names,
// the reserved help and version entries, and at least one functional flag
// next to them (three entries or more).
func (r FlagRegistry) Validate() error {
	seen := make(map[string]struct{}, len(r))
	for i, f := range r {
		if f.Name == "" {
			return fmt.Errorf("flag #%d has an empty name", i)
		}
		if strings.HasPrefix(f.Name, "-") {
			return fmt.Errorf("flag %q must be registered without the leading marker", f.Name)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("flag %q is registered more than once", f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	if !r.Has(FlagHelp) {
		return fmt.Errorf("flags must contain '%s' flag", FlagHelp)
	}
	if !r.Has(FlagVersion) {
		return fmt.Errorf("flags must contain '%s' flag", FlagVersion)
	}
	if len(r) < 3 {
		return fmt.Errorf("flags must define at least one flag besides '%s' and '%s'", FlagHelp, FlagVersion)
	}
	return nil
}

// Defaults returns a FlagStates value with every flag at its configured default.
func (r FlagRegistry) Defaults() FlagStates {
	states := FlagStates{
		order: make([]string, 0, len(r)),
		state: make(map[string]bool, len(r)),
	}
	for _, f := range r {
		states.order = append(states.order, f.Name)
		states.state[f.Name] = f.DefaultEnabled
	}
	return states
}

// FlagStates is the ordered name → enabled mapping produced by a parse call.
// The zero value has no flags; every lookup on it reports false.
type FlagStates struct {
	order []string
	state map[string]bool
}

// Enabled reports whether the named flag is on. Unknown names report false.
func (s FlagStates) Enabled(name string) bool {
	return s.state[name]
}

// Names returns the flag names in declaration order.
func (s FlagStates) Names() []string {
	return append([]string(nil), s.order...)
}

// Map returns a copy of the states keyed by flag name.
func (s FlagStates) Map() map[string]bool {
	m := make(map[string]bool, len(s.state))
	for k, v := range s.state {
		m[k] = v
	}
	return m
}

// Len returns the number of flags.
func (s FlagStates) Len() int {
	return len(s.order)
}

// Enable turns a registered flag on and reports whether the name was known.
// FlagStates shares its map between copies, so Clone before handing a value
// to code that must not observe later changes.
func (s FlagStates) Enable(name string) bool {
	if _, ok := s.state[name]; !ok {
		return false
	}
	s.state[name] = true
	return true
}

// Clone returns an independent copy.
func (s FlagStates) Clone() FlagStates {
	return FlagStates{order: s.Names(), state: s.Map()}
}

// ExtensionList is an ordered list of file extensions, lowercase and
// without the leading dot. The first entry is the default extension.
type ExtensionList []string

// NormalizeExtension lowercases ext and strips one leading dot.
func NormalizeExtension(ext string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
}

// NewExtensionList normalizes every entry (see NormalizeExtension).
func NewExtensionList(exts ...string) ExtensionList {
	list := make(ExtensionList, 0, len(exts))
	for _, e := range exts {
		list = append(list, NormalizeExtension(e))
	}
	return list
}

// Default returns the first extension, or "" for an empty list.
func (l ExtensionList) Default() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}

// Contains reports whether ext (already normalized) is in the list.
func (l ExtensionList) Contains(ext string) bool {
	for _, e := range l {
		if e == ext {
			return true
		}
	}
	return false
}

// Equal reports whether both lists hold the same extensions in the same order.
func (l ExtensionList) Equal(other ExtensionList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// String joins the extensions with ", " for help output.
func (l ExtensionList) String() string {
	return strings.Join(l, ", ")
}

// Validate checks that the list is non-empty and every entry is normalized.
// The name parameter ("source_ext" or "target_ext") is used in messages.
func (l ExtensionList) Validate(name string) error {
	if len(l) == 0 {
		return fmt.Errorf("%s is not defined", name)
	}
	for _, e := range l {
		if e == "" {
			return fmt.Errorf("%s contains an empty extension", name)
		}
		if e != NormalizeExtension(e) {
			return fmt.Errorf("%s entry %q must be lowercase and without a leading dot", name, e)
		}
	}
	return nil
}

// ResolvedPaths holds the outcome of path resolution.
type ResolvedPaths struct {
	// Source is the resolved source file or directory.
	Source string `json:"source"`

	// Target is the resolved target file. Empty in directory mode.
	Target string `json:"target"`
}

// IsDirectoryMode reports whether the source was a directory, in which
// case no target was derived.
func (p ResolvedPaths) IsDirectoryMode() bool {
	return p.Source != "" && p.Target == ""
}

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind int

const (
	// OutcomeFailure means parsing stopped at a usage error.
	OutcomeFailure OutcomeKind = iota

	// OutcomeSuccess carries resolved paths and flag states.
	OutcomeSuccess

	// OutcomeInformational carries help or version text. The caller is
	// expected to print it and exit successfully.
	OutcomeInformational
)

// String returns the lowercase name of the kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeInformational:
		return "informational"
	default:
		return "failure"
	}
}

// Outcome is the result of a single parse call.
//
// Exactly one variant is meaningful, selected by Kind:
//   - OutcomeSuccess: Paths and Flags
//   - OutcomeFailure: Err
//   - OutcomeInformational: Text (and Flags, showing which of help/version fired)
type Outcome struct {
	Kind  OutcomeKind
	Paths ResolvedPaths
	Flags FlagStates
	Err   error
	Text  string
}

// Ok reports whether the outcome is a success.
func (o Outcome) Ok() bool {
	return o.Kind == OutcomeSuccess
}
