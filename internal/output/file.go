package output

import (
	"regexp"
	"strings"
	"time"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFilename replaces characters that are unsafe in file names, so a
// model name like "falcon3:70b" yields a portable base name.
func SanitizeFilename(name string) string {
	name = unsafeFilename.ReplaceAllString(strings.TrimSpace(name), "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "results"
	}
	return name
}

// Filename builds the output file name for a run. A zero timestamp omits
// the timestamp suffix.
func Filename(base string, format Format, ts time.Time) string {
	name := SanitizeFilename(base)
	if !ts.IsZero() {
		name += "_" + ts.Format("20060102-150405")
	}
	return name + "." + string(format)
}
