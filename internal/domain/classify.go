package domain

import (
	"strconv"
	"strings"
)

// Classified is the field set read from the arguments of one invocation
type Classified struct {
	Verbosity     Verbosity
	Transfers     int
	CreateLogFile bool
	LogFilePath   string
	MinAge        string
	Include       []string
	Exclude       []string
	ExtraFlags    []string
	Positional    []string

	// DroppedConfig holds the values of discarded --config flags
	DroppedConfig []string
}

func newClassified() Classified {
	return Classified{
		Verbosity: VerbosityNormal,
		Transfers: DefaultTransfers,
	}
}

// Short verbosity flags match exactly; long ones ignore case.
var (
	shortVerbosityFlags = map[string]Verbosity{
		"-q":  VerbosityQuiet,
		"-v":  VerbosityVerbose,
		"-vv": VerbosityVeryVerbose,
	}
	longVerbosityFlags = map[string]Verbosity{
		"--quiet":   VerbosityQuiet,
		"--verbose": VerbosityVerbose,
	}
)

func lookupVerbosityFlag(tok string) (Verbosity, bool) {
	if v, ok := shortVerbosityFlags[tok]; ok {
		return v, true
	}
	v, ok := longVerbosityFlags[strings.ToLower(tok)]
	return v, ok
}

// valueFlags maps each recognized flag (lower-cased) to the handler that
// applies its value. Membership also decides whether "--flag value" consumes
// the following token.
var valueFlags = map[string]func(c *Classified, value string){
	"--transfers": func(c *Classified, v string) {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Transfers = n
		}
	},
	"--log-file": func(c *Classified, v string) {
		c.LogFilePath = v
		c.CreateLogFile = true
	},
	"--min-age": func(c *Classified, v string) { c.MinAge = v },
	"--include": func(c *Classified, v string) { c.Include = append(c.Include, v) },
	"--exclude": func(c *Classified, v string) { c.Exclude = append(c.Exclude, v) },
	// The host manages its own rclone config location.
	"--config": func(c *Classified, v string) { c.DroppedConfig = append(c.DroppedConfig, v) },
}

func takesValue(flag string) bool {
	_, ok := valueFlags[strings.ToLower(flag)]
	return ok
}

// Classify walks the arguments that follow the operation keyword
func Classify(args []string) Classified {
	c := newClassified()
	c.classify(args)
	return c
}

func (c *Classified) classify(args []string) {
	for i := 0; i < len(args); i++ {
		tok := args[i]

		if v, ok := lookupVerbosityFlag(tok); ok {
			c.Verbosity = v
			continue
		}

		if !strings.HasPrefix(tok, "--") {
			c.Positional = append(c.Positional, tok)
			continue
		}

		switch {
		case strings.Contains(tok, "="):
			eq := strings.IndexByte(tok, '=')
			c.apply(tok[:eq], unquote(tok[eq+1:]))
		case takesValue(tok) && i+1 < len(args):
			c.apply(tok, args[i+1])
			i++
		default:
			c.ExtraFlags = append(c.ExtraFlags, tok)
		}
	}
}

func (c *Classified) apply(name, value string) {
	if handle, ok := valueFlags[strings.ToLower(name)]; ok {
		handle(c, value)
		return
	}
	c.ExtraFlags = append(c.ExtraFlags, name+"="+value)
}

// unquote strips one layer of surrounding double quotes
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
