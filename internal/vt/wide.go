package vt

import "github.com/unilibs/uniwidth"

// RuneWidth returns the terminal column width (0, 1, or 2) of r.
func RuneWidth(r rune) int {
	return uniwidth.RuneWidth(r)
}

// StringWidth returns the summed terminal column width of s.
func StringWidth(s string) int {
	return uniwidth.StringWidth(s)
}
