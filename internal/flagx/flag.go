// Package flagx contains helpers for command-line flag handling that let
// independent packages parse their own flags without tripping over each
// other's arguments.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args that belongs to the allowed flags,
// including values supplied either as a separate argument ("-c conf.json")
// or in "--config=conf.json" form. Everything else is dropped, so a flag set
// parsing the result never sees flags it does not define.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--flag=value" form: keep the whole argument when the name matches.
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		// "-flag value" form: keep the flag, and the next argument too when
		// it does not look like another flag.
		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JSONConfigFlag extracts the config file path given via -c or -config.
// Only these two flags are examined; all other arguments are ignored.
// Returns "" when neither flag is present.
func JSONConfigFlag() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
