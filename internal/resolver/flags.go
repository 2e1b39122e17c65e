package resolver

import (
	"strings"

	"go.uber.org/zap"

	"github.com/shinji-kodama/convargs/internal/model"
)

// flagMarker introduces a flag token. It may appear once or twice.
const flagMarker = "-"

// classify splits args into flag tokens and positional tokens, keeping
// their relative order. Empty arguments are dropped.
func classify(args []string) (flagTokens, positionals []string) {
	for _, arg := range args {
		// Empty strings come from shells and wrappers passing "" through;
		// they are neither flags nor file names.
		if arg == "" {
			continue
		}
		// Anything starting with the marker is a flag candidate, including a
		// lone "-". Unknown candidates are rejected by resolveFlags.
		if strings.HasPrefix(arg, flagMarker) {
			flagTokens = append(flagTokens, arg)
		} else {
			positionals = append(positionals, arg)
		}
	}
	return flagTokens, positionals
}

// flagName strips one or two leading markers from a flag token.
func flagName(token string) string {
	name := strings.TrimPrefix(token, flagMarker)
	return strings.TrimPrefix(name, flagMarker)
}

// resolveFlags enables the registered flag matching each token and returns
// how many tokens matched. The first unknown token aborts with an error.
func (r *Resolver) resolveFlags(tokens []string, flags model.FlagStates) (int, error) {
	count := 0
	for _, token := range tokens {
		name := flagName(token)

		// Enable reports false for names outside the registry. Matching is
		// case-sensitive: "-Help" is not "-help".
		if !flags.Enable(name) {
			return count, model.NewUsageError(model.ErrUnknownFlag, token,
				"argument: Unknown flag "+token)
		}
		count++
		r.log.Debug("flag enabled", zap.String("flag", name), zap.String("token", token))
	}
	return count, nil
}

// tooManyArguments builds the error shared by the positional count check
// and the help/version guard.
func tooManyArguments() error {
	return model.NewUsageError(model.ErrTooManyArguments, "", "argument: Too many arguments")
}
