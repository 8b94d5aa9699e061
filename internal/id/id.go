package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatEntryRef returns a journal reference like "2025-01-001".
func FormatEntryRef(year, month, seq int) string {
	return fmt.Sprintf("%04d-%02d-%03d", year, month, seq)
}

// MonthPrefix returns the "YYYY-MM-" prefix shared by every reference of a month.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}

// ParseEntryRef parses "2025-01-001" into year, month, seq.
func ParseEntryRef(ref string) (year, month, seq int, err error) {
	parts := strings.SplitN(strings.TrimSpace(ref), "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid entry reference format: %q", ref)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in entry reference %q: %w", ref, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in entry reference %q: %w", ref, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("month out of range in entry reference %q", ref)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in entry reference %q: %w", ref, err)
	}

	return year, month, seq, nil
}

// NextSeq returns one past the highest sequence among refs for the given month.
// References that do not parse, or belong to another month, are ignored.
func NextSeq(refs []string, year, month int) int {
	maxSeq := 0
	for _, ref := range refs {
		y, m, seq, err := ParseEntryRef(ref)
		if err != nil || y != year || m != month {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}
