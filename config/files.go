package config

import "strings"

// CleanFileName replaces characters not allowed in file names with
// underscores. Leading dots are dropped so results are never hidden files.
func CleanFileName(in string) string {
	out := strings.TrimLeft(strings.Map(func(sym rune) rune {
		if badFileRune(sym) {
			return '_'
		}
		return sym
	}, strings.TrimSpace(in)), ".")
	if strings.Trim(out, "_") == "" {
		return "_bad_file_name_"
	}
	return out
}
