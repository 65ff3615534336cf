package config

import (
	"errors"
	"flag"
	"strings"
)

// EnvAPIKey is the environment variable consulted when --api-key is absent.
const EnvAPIKey = "COINGLASS_API_KEY"

// ErrMissingAPIKey is returned when neither the flag nor the environment
// provides a key.
var ErrMissingAPIKey = errors.New("an API key is required: use --api-key or set " + EnvAPIKey)

// ResolveAPIKey picks the API key: a non-empty flag value wins, otherwise the
// value of COINGLASS_API_KEY. The key format is not checked.
func ResolveAPIKey(flagValue string, getenv func(string) string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if getenv != nil {
		if v := getenv(EnvAPIKey); v != "" {
			return v, nil
		}
	}
	return "", ErrMissingAPIKey
}

// KnownArgs keeps only the arguments fs defines, so positional arguments and
// unknown flags anywhere on the command line are skipped instead of stopping
// or failing the parse. A non-boolean flag takes the next argument as its
// value whatever it looks like; one with no value left is dropped, so a bare
// trailing --api-key falls back to the environment.
func KnownArgs(fs *flag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}
		name, _, hasValue := strings.Cut(strings.TrimPrefix(arg[1:], "-"), "=")
		if name == "h" || name == "help" {
			out = append(out, arg)
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if hasValue || isBoolFlag(f) {
			out = append(out, arg)
			continue
		}
		if i+1 < len(args) {
			out = append(out, arg, args[i+1])
			i++
		}
	}
	return out
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
