package utils

import (
	"slices"
	"strings"
)

// Toggle removes item from set when present, otherwise appends it. The input slice
// is never modified and the result is never nil.
func Toggle(set []string, item string) []string {
	if slices.Contains(set, item) {
		return Remove(set, item)
	}
	out := make([]string, 0, len(set)+1)
	out = append(out, set...)
	return append(out, item)
}

// Remove returns a copy of seq without item.
func Remove(seq []string, item string) []string {
	out := make([]string, 0, len(seq))
	for _, s := range seq {
		if s != item {
			out = append(out, s)
		}
	}
	return out
}

// AppendUnique appends the trimmed item unless it is empty or already present.
func AppendUnique(seq []string, item string) []string {
	item = strings.TrimSpace(item)
	out := make([]string, 0, len(seq)+1)
	out = append(out, seq...)
	if item == "" || slices.Contains(seq, item) {
		return out
	}
	return append(out, item)
}
