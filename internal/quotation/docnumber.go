package quotation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DocPrefixFor returns the document number prefix for a given date,
// e.g. "CS20250829-".
func DocPrefixFor(date time.Time) string {
	return "CS" + date.Format("20060102") + "-"
}

// FormatDocNumber renders a full document number from a prefix and a
// running sequence, zero padded to four digits.
func FormatDocNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}

// NextSequence scans existing document numbers sharing prefix and
// returns the next free sequence. Numbers with a non-numeric suffix
// are ignored. Returns 1 when no number matches.
func NextSequence(prefix string, existing []string) int {
	max := 0
	for _, doc := range existing {
		suffix, ok := strings.CutPrefix(doc, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}
