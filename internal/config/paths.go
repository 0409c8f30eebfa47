package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// windowsEnvRef matches %VAR% references.
var windowsEnvRef = regexp.MustCompile(`%([^%]+)%`)

// expandPath expands environment variables and a leading ~ in p.
// %VAR% references are only expanded on Windows; unknown ones are kept.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = windowsEnvRef.ReplaceAllStringFunc(p, func(ref string) string {
			if val, ok := os.LookupEnv(ref[1 : len(ref)-1]); ok {
				return val
			}
			return ref
		})
	}
	return expandHome(p)
}

// expandHome replaces a leading ~ with the home directory. ~user forms are
// left alone.
func expandHome(p string) string {
	rest, ok := strings.CutPrefix(p, "~")
	if !ok {
		return p
	}
	if rest != "" && !isSeparatorPrefix(rest) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest[1:])
}

func isSeparatorPrefix(s string) bool {
	return strings.HasPrefix(s, "/") || (runtime.GOOS == "windows" && strings.HasPrefix(s, `\`))
}
