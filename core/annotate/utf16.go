// ABOUTME: UTF-16 code unit helpers for the canonical offset space
// ABOUTME: Offsets count surrogate pairs as two units to match selection APIs

package annotate

import "strings"

// utf16Len returns the length of s in UTF-16 code units
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// utf16AlignDown returns the largest rune boundary at or below off in s.
// An offset pointing at the trail unit of a surrogate pair snaps back to
// the lead unit.
func utf16AlignDown(s string, off int) int {
	u := 0
	for _, r := range s {
		if u >= off {
			break
		}
		w := 1
		if r >= 0x10000 {
			w = 2
		}
		if u+w > off {
			return u
		}
		u += w
	}
	return off
}

// utf16Slice returns the substring of s covering [start, end) in UTF-16 code
// units. A boundary landing inside a surrogate pair is widened outward so a
// pair is never split.
func utf16Slice(s string, start, end int) string {
	if end <= start {
		return ""
	}
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	u := 0
	for _, r := range s {
		w := 1
		if r >= 0x10000 {
			w = 2
		}
		if u >= end {
			break
		}
		if u+w > start {
			b.WriteRune(r)
		}
		u += w
	}
	return b.String()
}
