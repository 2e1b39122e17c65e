// Package resolver implements the argument resolver of single-source /
// single-target conversion tools.
//
// A Resolver is built once from a Config and then turns argv into a
// model.Outcome on every Parse call:
//
//	Init → TokenClassified → FlagsResolved → Informational
//	                                       → PositionalsResolved → Success | Failure
//
// Parsing stops at the first error. Nothing carries over between calls
// except the snapshot returned by Last, which is reset at the start of
// every call.
package resolver

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/shinji-kodama/convargs/internal/model"
	"github.com/shinji-kodama/convargs/internal/usage"
)

// Config describes the embedding program. It is read-only once passed to New.
type Config struct {
	// Name and Version feed the help and version texts.
	Name    string
	Version string

	// SourceExt lists the accepted source extensions. The first entry is
	// the default source extension.
	SourceExt model.ExtensionList

	// TargetExt lists the accepted target extensions. The first entry is
	// used when the target is derived from the source.
	TargetExt model.ExtensionList

	// Flags is the registry of boolean switches. It must contain "help"
	// and "version" plus at least one functional flag.
	Flags model.FlagRegistry

	// Notes and UsageTemplate customize the help text (see package usage).
	Notes         []string
	UsageTemplate string
}

// Validate checks the configuration invariants. Violations are returned
// as *model.ConfigError.
//
// Identical source and target lists are allowed; the resolver validates
// each resolved target against TargetExt instead.
func (c Config) Validate() error {
	if err := c.SourceExt.Validate("source_ext"); err != nil {
		return model.NewConfigError("%v", err)
	}
	if err := c.TargetExt.Validate("target_ext"); err != nil {
		return model.NewConfigError("%v", err)
	}
	if err := c.Flags.Validate(); err != nil {
		return model.NewConfigError("%v", err)
	}
	return nil
}

// program converts the configuration into the input of the usage renderer.
func (c Config) program() usage.Program {
	return usage.Program{
		Name:      c.Name,
		Version:   c.Version,
		SourceExt: c.SourceExt,
		TargetExt: c.TargetExt,
		Flags:     c.Flags,
		Notes:     c.Notes,
		Template:  c.UsageTemplate,
	}
}

// clone deep-copies the slices so later edits by the caller cannot leak in.
func (c Config) clone() Config {
	out := c
	out.SourceExt = append(model.ExtensionList(nil), c.SourceExt...)
	out.TargetExt = append(model.ExtensionList(nil), c.TargetExt...)
	out.Flags = append(model.FlagRegistry(nil), c.Flags...)
	out.Notes = append([]string(nil), c.Notes...)
	return out
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug tracing of parse calls.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.log = logger
		}
	}
}

// Resolver turns raw arguments into validated flags and paths.
//
// Configuration is immutable after New, so Parse may be called from
// several goroutines. Last reflects whichever call finished last.
type Resolver struct {
	// cfg is the validated, privately owned copy of the configuration.
	cfg Config

	// helpText and versionText are rendered once by New; Parse only hands
	// them out.
	helpText    string
	versionText string

	// log receives debug tracing. It is never nil for a Resolver built by
	// New, which is how mustBeValid detects zero-value resolvers.
	log *zap.Logger

	// mu guards the snapshot returned by Last.
	mu sync.Mutex

	// lastPaths and lastFlags hold the result of the most recent successful
	// Parse, or the reset state after a failed one.
	lastPaths model.ResolvedPaths
	lastFlags model.FlagStates
}

// New validates cfg and builds a Resolver. A non-nil error is always a
// *model.ConfigError: the program is misconfigured and should not start.
func New(cfg Config, opts ...Option) (*Resolver, error) {
	cfg = cfg.clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// A broken usage template is the tool author's mistake, same as an
	// empty extension list.
	help, err := usage.Help(cfg.program())
	if err != nil {
		return nil, model.NewConfigError("%v", err)
	}

	r := &Resolver{
		cfg:         cfg,
		helpText:    help,
		versionText: usage.Version(cfg.program()),
		log:         zap.NewNop(),
		lastFlags:   cfg.Flags.Defaults(),
	}
	for _, opt := range opts {
		opt(r)
	}

	// Identical lists are legal; the per-target check still catches a
	// conversion onto the source itself.
	if cfg.SourceExt.Equal(cfg.TargetExt) {
		r.log.Debug("source and target extension lists are identical",
			zap.Strings("extensions", cfg.SourceExt))
	}
	return r, nil
}

// MustNew is like New but panics on an invalid configuration.
// It suits programs whose configuration is a compile-time constant.
func MustNew(cfg Config, opts ...Option) *Resolver {
	r, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Config returns a copy of the resolver configuration.
func (r *Resolver) Config() Config {
	return r.cfg.clone()
}

// HelpText returns the rendered help screen.
func (r *Resolver) HelpText() string {
	return r.helpText
}

// VersionText returns the rendered version banner.
func (r *Resolver) VersionText() string {
	return r.versionText
}

// Last returns the paths and flags published by the most recent successful
// Parse call. Both are reset (empty paths, default flags) at the start of
// every call, so after a failed call Last reports the reset state.
func (r *Resolver) Last() (model.ResolvedPaths, model.FlagStates) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPaths, r.lastFlags.Clone()
}

// Parse resolves args (argv without the program name).
//
// It never exits the process. Help and version requests come back as
// model.OutcomeInformational; usage problems as model.OutcomeFailure with
// a *model.UsageError.
func (r *Resolver) Parse(args []string) model.Outcome {
	r.mustBeValid()
	r.reset()

	// Every call starts from the registry defaults; nothing from an earlier
	// call survives.
	flags := r.cfg.Flags.Defaults()
	flagTokens, files := classify(args)
	r.log.Debug("classified arguments",
		zap.Strings("flags", flagTokens),
		zap.Strings("positionals", files))

	count, err := r.resolveFlags(flagTokens, flags)
	if err != nil {
		return r.failure(err, flags)
	}

	// Help and version are answered before any path is looked at, but only
	// when they are the sole argument.
	if flags.Enabled(model.FlagHelp) || flags.Enabled(model.FlagVersion) {
		if count > 1 || len(files) != 0 {
			return r.failure(tooManyArguments(), flags)
		}
		text := r.versionText
		if flags.Enabled(model.FlagHelp) {
			text = r.helpText
		}
		return model.Outcome{Kind: model.OutcomeInformational, Text: text, Flags: flags}
	}

	paths, err := r.resolvePaths(files)
	if err != nil {
		return r.failure(err, flags)
	}

	r.publish(paths, flags)
	r.log.Debug("resolved paths",
		zap.String("source", paths.Source),
		zap.String("target", paths.Target),
		zap.Bool("directory_mode", paths.IsDirectoryMode()))
	return model.Outcome{Kind: model.OutcomeSuccess, Paths: paths, Flags: flags.Clone()}
}

// mustBeValid re-asserts the configuration invariants. A Resolver that
// did not come from New is a programmer error.
func (r *Resolver) mustBeValid() {
	if r == nil || r.log == nil {
		panic("resolver: Parse called on a Resolver not created with New")
	}
	if err := r.cfg.Validate(); err != nil {
		panic(err)
	}
}

// reset clears the Last snapshot at the start of a call.
func (r *Resolver) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPaths = model.ResolvedPaths{}
	r.lastFlags = r.cfg.Flags.Defaults()
}

// publish stores the result of a successful call for Last.
func (r *Resolver) publish(paths model.ResolvedPaths, flags model.FlagStates) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPaths = paths
	r.lastFlags = flags.Clone()
}

// failure logs err and wraps it into a failed outcome. The flags resolved
// so far are kept so callers can inspect them.
func (r *Resolver) failure(err error, flags model.FlagStates) model.Outcome {
	r.log.Debug("parse failed", zap.Error(err))
	return model.Outcome{Kind: model.OutcomeFailure, Err: err, Flags: flags}
}

// String summarizes the configuration for debugging.
func (r *Resolver) String() string {
	return fmt.Sprintf("resolver(%s: [%s] -> [%s], flags=%v)",
		r.cfg.Name, r.cfg.SourceExt, r.cfg.TargetExt, r.cfg.Flags.Names())
}
