// Package flagx lets several components parse their own flags out of one
// shared os.Args without tripping over each other's flags.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the subset of args made of allowed flags and their values.
//
// Both "-c conf.json" and "-c=conf.json" forms are recognised. A value is
// taken from the next argument only when it does not itself start with "-".
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	matched, _ := SplitArgs(args, allowedFlags)
	return matched
}

// StripArgs is the complement of FilterArgs: it drops allowed flags and
// their values and keeps everything else in order.
func StripArgs(args []string, flags []string) []string {
	_, rest := SplitArgs(args, flags)
	return rest
}

// SplitArgs partitions args into the allowed flags with their values and
// the remainder. Neither result is nil.
func SplitArgs(args []string, allowedFlags []string) (matched, rest []string) {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	matched = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				matched = append(matched, arg)
			} else {
				rest = append(rest, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			matched = append(matched, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				matched = append(matched, args[i+1])
				i++
			}
			continue
		}
		rest = append(rest, arg)
	}

	return matched, rest
}

// ConfigPath extracts the JSON config file path given with -c or -config.
// Other arguments are ignored; the last occurrence wins. It returns "" when
// no config file was requested.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
