// Package cleaner normalizes text extracted from PDFs. Extraction tends to
// produce glued sentences, stray single letters, and noisy whitespace; Clean
// applies a fixed sequence of repairs and is idempotent.
package cleaner

import (
	"regexp"
	"strings"
)

var (
	reDashRun      = regexp.MustCompile(`[-–—]{3,}`)
	reInlineSpace  = regexp.MustCompile(`[ \t\r\f]+`)
	reBlankLines   = regexp.MustCompile(`\n[ \t]*\n[ \t]*(?:\n[ \t]*)+`)
	reDigitPeriod  = regexp.MustCompile(`(\d)\.([A-Z])`)
	rePeriodUpper  = regexp.MustCompile(`\.([A-Z])`)
	reLowerParen   = regexp.MustCompile(`([a-z])\(`)
	reColonLetter  = regexp.MustCompile(`:([A-Za-z])`)
	reLoneLetter   = regexp.MustCompile(`(^|[ \t\n])[A-Za-z][ \t]+`)
	reSpacePunct   = regexp.MustCompile(`[ \t]+([,.!?;:])`)
	rePunctSpaces  = regexp.MustCompile(`([,.!?;:])[ \t]{2,}`)
	reBulletMarker = regexp.MustCompile(`(^|\n)([•*-])([^\s])`)
	reListMarker   = regexp.MustCompile(`(^|\n)(\d+\.)([^\s0-9])`)
)

// Clean applies the normalization rules in order. Later rules assume earlier
// ones already ran. Malformed input produces best-effort output; Clean never
// fails.
func Clean(raw string) string {
	s := raw

	// 1. Long hyphen/dash runs are separator artifacts.
	s = reDashRun.ReplaceAllString(s, " ")

	// 2. Collapse horizontal whitespace runs.
	s = reInlineSpace.ReplaceAllString(s, " ")

	// 3. Collapse stacked blank lines to a single paragraph break.
	s = reBlankLines.ReplaceAllString(s, "\n\n")

	// 4. Re-insert the space lost between sentences.
	s = reDigitPeriod.ReplaceAllString(s, "$1. $2")
	s = rePeriodUpper.ReplaceAllString(s, ". $1")

	// 5. Space before an open parenthesis glued to a word.
	s = reLowerParen.ReplaceAllString(s, "$1 (")

	// 6. Space after a colon glued to a letter.
	s = reColonLetter.ReplaceAllString(s, ": $1")

	// 7. Isolated single letters are extraction artifacts unless they look
	// like list markers (followed by '.' or ':'). Each match consumes the
	// separator between adjacent artifacts, so iterate to a fixpoint.
	for {
		next := reLoneLetter.ReplaceAllString(s, "$1")
		if next == s {
			break
		}
		s = next
	}

	// 8. No space before punctuation, one space after.
	s = reSpacePunct.ReplaceAllString(s, "$1")
	s = rePunctSpaces.ReplaceAllString(s, "$1 ")

	// 9. Space after bullet and numbered list markers.
	s = reBulletMarker.ReplaceAllString(s, "$1$2 $3")
	s = reListMarker.ReplaceAllString(s, "$1$2 $3")

	return strings.TrimSpace(s)
}
