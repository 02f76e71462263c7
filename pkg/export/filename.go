package export

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var digits = regexp.MustCompile(`\d+`)

// OutputName derives the CSV name from the first input file: the .nessus
// extension and all digits are dropped from the base name, then the month and
// year of now are appended. The input's directory is kept.
func OutputName(input string, now time.Time) string {
	dir, base := filepath.Split(input)
	if strings.EqualFold(filepath.Ext(base), ".nessus") {
		base = base[:len(base)-len(".nessus")]
	}
	base = digits.ReplaceAllString(base, "")
	return filepath.Join(dir, base+now.Format("01_2006")+".csv")
}
