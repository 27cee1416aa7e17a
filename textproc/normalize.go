package textproc

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// maxNormalizePasses bounds the fixed-point loop in NormalizeText. Lowercasing
// can reintroduce compatibility characters only in rare cases, so two passes
// settle every input seen so far.
const maxNormalizePasses = 4

// NormalizeText applies NFKC compatibility normalization followed by
// lowercasing. The result is a fixed point: NormalizeText(NormalizeText(s))
// equals NormalizeText(s).
func NormalizeText(text string) string {
	// cases.Caser keeps internal state, so one is created per call.
	lower := cases.Lower(language.Und)

	s := text
	for i := 0; i < maxNormalizePasses; i++ {
		next := lower.String(norm.NFKC.String(s))
		if next == s {
			break
		}
		s = next
	}
	return s
}
