// Package textproc implements the text kernels: substring search, compatibility
// normalization and keyword extraction.
//
// Positions are reported in runes, not bytes, so that they index the host's
// character sequence directly.
package textproc

import (
	"github.com/sbl8/vrkernels/core"
)

// NotFound is returned by Search when the pattern does not occur.
const NotFound = -1

// Search returns the rune index of the first occurrence of pattern in text, or
// NotFound. An empty pattern matches at 0.
//
// The scan is Boyer-Moore: the window is compared right to left and advanced
// by the larger of the bad-character and good-suffix shifts. Both shifts are
// safe, so no match is ever skipped.
func Search(text, pattern string) int {
	if pattern == "" {
		return 0
	}
	t := []rune(text)
	p := []rune(pattern)
	if len(p) > len(t) {
		return NotFound
	}
	m := newMatcher(p)
	return m.next(t, 0)
}

// SearchAll returns the rune index of every occurrence of pattern in text,
// including overlapping ones. An empty pattern is rejected with
// core.ErrEmptyPattern since it would match at every position.
func SearchAll(text, pattern string) ([]int, error) {
	if pattern == "" {
		return nil, core.ErrEmptyPattern
	}
	t := []rune(text)
	p := []rune(pattern)
	if len(p) > len(t) {
		return nil, nil
	}

	m := newMatcher(p)
	var hits []int
	for s := m.next(t, 0); s != NotFound; s = m.next(t, s+m.goodSuffix[0]) {
		hits = append(hits, s)
	}
	return hits, nil
}

// matcher holds the precomputed shift tables for one pattern.
type matcher struct {
	pattern    []rune
	ascii      [128]int // last index of each ASCII rune, -1 if absent
	last       map[rune]int
	goodSuffix []int // shift when the mismatch happens just before pattern[j:]
}

func newMatcher(p []rune) *matcher {
	m := &matcher{pattern: p}
	for i := range m.ascii {
		m.ascii[i] = -1
	}
	for i, r := range p {
		if r >= 0 && r < 128 {
			m.ascii[r] = i
			continue
		}
		if m.last == nil {
			m.last = make(map[rune]int)
		}
		m.last[r] = i
	}
	m.goodSuffix = goodSuffixTable(p)
	return m
}

func (m *matcher) lastIndex(r rune) int {
	if r >= 0 && r < 128 {
		return m.ascii[r]
	}
	if i, ok := m.last[r]; ok {
		return i
	}
	return -1
}

// next returns the first match at or after from, or NotFound.
func (m *matcher) next(t []rune, from int) int {
	p := m.pattern
	n, plen := len(t), len(p)
	for s := from; s <= n-plen; {
		j := plen - 1
		for j >= 0 && p[j] == t[s+j] {
			j--
		}
		if j < 0 {
			return s
		}
		shift := m.goodSuffix[j+1]
		if bc := j - m.lastIndex(t[s+j]); bc > shift {
			shift = bc
		}
		s += shift
	}
	return NotFound
}

// goodSuffixTable builds the strong good-suffix shifts. shift[j] is the
// distance to advance when pattern[j:] matched and pattern[j-1] did not;
// shift[0] is the pattern period, used after a full match.
func goodSuffixTable(p []rune) []int {
	m := len(p)
	shift := make([]int, m+1)
	border := make([]int, m+1)

	i, j := m, m+1
	border[i] = j
	for i > 0 {
		for j <= m && p[i-1] != p[j-1] {
			if shift[j] == 0 {
				shift[j] = j - i
			}
			j = border[j]
		}
		i--
		j--
		border[i] = j
	}

	j = border[0]
	for i := 0; i <= m; i++ {
		if shift[i] == 0 {
			shift[i] = j
		}
		if i == j {
			j = border[j]
		}
	}
	return shift
}
