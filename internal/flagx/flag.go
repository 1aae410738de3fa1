// Package flagx lets several independent flag sets share one command line.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// token is one command-line item: a flag with its value, or a positional
// argument (name empty).
type token struct {
	name string
	args []string
}

// tokenize splits args into flags and positionals. A flag listed in
// valueFlags consumes the next argument unless it starts with '-'. The
// "-flag=value" form never consumes. Everything after "--" is positional.
func tokenize(args []string, valueFlags map[string]struct{}) []token {
	toks := make([]token, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			for _, rest := range args[i+1:] {
				toks = append(toks, token{args: []string{rest}})
			}
			return toks
		case arg == "-" || !strings.HasPrefix(arg, "-"):
			toks = append(toks, token{args: []string{arg}})
		case strings.Contains(arg, "="):
			toks = append(toks, token{name: strings.SplitN(arg, "=", 2)[0], args: []string{arg}})
		default:
			tok := token{name: arg, args: []string{arg}}
			if _, ok := valueFlags[arg]; ok && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				tok.args = append(tok.args, args[i+1])
				i++
			}
			toks = append(toks, tok)
		}
	}
	return toks
}

func set(names []string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// FilterArgs keeps only the flags in allowedFlags, with their values, so a
// flag.FlagSet that knows nothing else can parse the result. Both "-c v" and
// "-c=v" are understood.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := set(allowedFlags)
	out := make([]string, 0, len(args))
	for _, tok := range tokenize(args, allowed) {
		if _, ok := allowed[tok.name]; ok && tok.name != "" {
			out = append(out, tok.args...)
		}
	}
	return out
}

// Positional returns the arguments that are neither flags nor values of the
// flags in valueFlags; the client uses it to find its subcommand.
func Positional(args []string, valueFlags []string) []string {
	out := make([]string, 0, len(args))
	for _, tok := range tokenize(args, set(valueFlags)) {
		if tok.name == "" {
			out = append(out, tok.args...)
		}
	}
	return out
}

// JsonConfigFlags returns the config file path given with -c or -config on
// the process command line, or "" when there is none.
func JsonConfigFlags() string {
	return ConfigPath(os.Args[1:])
}

// ConfigPath is JsonConfigFlags over an explicit argument list. When the flag
// repeats, the last value wins.
func ConfigPath(args []string) string {
	var config string

	args = FilterArgs(args, []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
