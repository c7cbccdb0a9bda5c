// Package flagx lets several flag sets share one command line.
//
// Server and client configuration parse the config-file flag and their own
// short flags in separate passes, so each pass first narrows os.Args down to
// the names it owns.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// ConfigFileFlagNames are the names accepted for the configuration file path.
var ConfigFileFlagNames = []string{"-c", "-config"}

// FilterArgs keeps only the arguments whose flag name is in allowed, together
// with their values. Both "-f value" and "-f=value" forms are recognized; a
// following token that starts with "-" is never taken as a value.
func FilterArgs(args []string, allowed []string) []string {
	names := make(map[string]bool, len(allowed))
	for _, n := range allowed {
		names[n] = true
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		if name, _, inline := strings.Cut(arg, "="); inline {
			if names[name] {
				out = append(out, arg)
			}
			continue
		}
		if !names[arg] {
			continue
		}
		out = append(out, arg)
		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			out = append(out, args[next])
			i = next
		}
	}
	return out
}

// ConfigFileFlag returns the configuration file path given with -c or
// -config, or "" when neither is present. The format is left to the caller
// (viper picks it from the extension), so json, yaml and toml paths are all
// returned unchanged.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file (json, yaml or toml)")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFileFlagNames))

	return path
}
