package lox

// This file provides the "did you mean" suggestions attached to
// undefined-variable and undefined-property errors.

import "strings"

// nearest returns the candidate name closest to name, or "" if every
// candidate is too far away to be a plausible typo. Matching is
// case-insensitive, and a candidate qualifies only if fixing the typo
// takes at most one edit per three characters of the name, so a name
// shorter than three characters is matched only by a candidate that
// differs from it in case alone.
func nearest(name string, candidates []string) string {
	limit := len(name) / 3

	best := ""
	bestDist := limit + 1
	lower := strings.ToLower(name)
	for _, c := range candidates {
		if d := editDistance(lower, strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// editDistance returns the Levenshtein distance between a and b,
// computed with the usual two-row dynamic program.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			d := prev[j-1] // substitution (or match)
			if a[i-1] != b[j-1] {
				d++
			}
			if del := prev[j] + 1; del < d {
				d = del
			}
			if ins := curr[j-1] + 1; ins < d {
				d = ins
			}
			curr[j] = d
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
