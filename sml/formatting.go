package sml

import "strings"

// FormatIndented renders f.StringPretty with every line prefixed,
// for diagnostic logging where a multi-line SML dump needs to nest
// under a single log line (e.g. reader.Diagnostics).
func FormatIndented(f *File, prefix string) string {
	return prefixMultilineString(f.StringPretty(), prefix)
}

func prefixMultilineString(s string, prefix string) string {
	split := strings.Split(s, "\n")
	newString := ""

	for _, part := range split {
		newString += prefix + part + "\n"
	}

	if len(newString) == 0 {
		return ""
	}

	return newString[:len(newString)-1]
}
