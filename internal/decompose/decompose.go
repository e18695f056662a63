// Package decompose splits a raw model response into subject, polished
// body, and edit notes. The model is asked for a fixed output shape but
// does not always comply, so parsing is a prioritized cascade of matchers
// with a fallback chain; it never fails, worst case the whole response
// becomes the body.
package decompose

import (
	"regexp"
	"strings"

	"github.com/quillworks/polishd/internal/prompt"
)

// Result is the structured form of one raw model response. Subject is
// empty when none was extracted; Notes is always non-nil.
type Result struct {
	Subject string
	Body    string
	Notes   []string
}

// Placeholder stands in for the body when the response consisted of
// nothing but note markers.
const Placeholder = "(no polished text)"

var (
	// Explicit "Subject:" or "Subject Line:" label anchored to a line start.
	subjectLineRe = regexp.MustCompile(`(?im)^[ \t]*subject(?: line)?[:\-][ \t]*(.*)$`)

	// "1) ... 2) ..." numbered pair. Matched against "\n"+text so the
	// first marker may sit at the very start.
	numberedPairRe = regexp.MustCompile(`\n\s*1[\).]([\s\S]*?)\n\s*2[\).]([\s\S]*)`)

	// "Polished text:" heading followed by an "Edit notes"/"Key edits"
	// heading or a bare second marker.
	labeledRe = regexp.MustCompile(`(?is)polished text[:\-]?\s*(.*?)\s*\n+(?:edit notes[:\-]?|key edits[:\-]?|2[\).])(.*)`)

	// Bare "2)" marker on its own line, last resort before giving up.
	bareSecondRe = regexp.MustCompile(`\n\s*2[\).]\s*`)
	leadingOneRe = regexp.MustCompile(`^\s*1[\).]\s*`)

	noteLineSplitRe    = regexp.MustCompile(`[\r\n]+`)
	noteMarkerRe       = regexp.MustCompile(`^[-*\d.)(]+\s+`)
	secondMarkerLineRe = regexp.MustCompile(`^\s*2[\).]`)
	headingPrefixRe    = regexp.MustCompile(`(?i)^\s*(?:edit notes|key edits)[:\-]?\s*`)
	bulletLineRe       = regexp.MustCompile(`^\s*[-*]\s*`)
)

// matcher attempts one body/notes split rule. Matchers run in fixed
// priority order; the first success wins.
type matcher func(text string) (body, notesRaw string, ok bool)

var matchers = []matcher{matchNumberedPair, matchLabeledHeadings, matchBareSecondMarker}

// Decompose parses a raw model response for the given request context.
// Subject extraction only runs for email-like contexts; the model was
// never asked for a subject otherwise, so a short first line must not be
// mistaken for one.
func Decompose(raw string, ctx prompt.Context) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{Notes: []string{}}
	}

	subject := ""
	remaining := raw
	if ctx.WantsSubject() {
		subject, remaining = extractSubject(raw)
	}

	body, notes := splitBodyNotes(remaining)
	if len(notes) == 0 {
		body, notes = reclassify(body)
	}

	body = finishBody(body, remaining, raw)
	if notes == nil {
		notes = []string{}
	}
	return Result{Subject: subject, Body: body, Notes: notes}
}

// extractSubject pulls a subject line off the top of the text, first via
// the explicit label, then via the implicit heuristic (first line of 8
// words or fewer followed by a blank line). The matched line is excised
// from the returned remainder.
func extractSubject(text string) (subject, remaining string) {
	if loc := subjectLineRe.FindStringSubmatchIndex(text); loc != nil {
		subject = stripEnclosingQuotes(strings.TrimSpace(text[loc[2]:loc[3]]))
		start, end := loc[0], loc[1]
		if end < len(text) && text[end] == '\n' {
			end++
		}
		return subject, text[:start] + text[end:]
	}

	lines := strings.Split(text, "\n")
	if len(lines) >= 2 {
		first := strings.TrimSpace(lines[0])
		if first != "" && len(strings.Fields(first)) <= 8 && strings.TrimSpace(lines[1]) == "" {
			remaining = ""
			if len(lines) > 2 {
				remaining = strings.Join(lines[2:], "\n")
			}
			return stripEnclosingQuotes(first), remaining
		}
	}

	return "", text
}

func splitBodyNotes(text string) (string, []string) {
	trimmed := strings.TrimSpace(text)
	for _, m := range matchers {
		if body, notesRaw, ok := m(trimmed); ok {
			return body, splitNotes(notesRaw)
		}
	}
	return trimmed, nil
}

func matchNumberedPair(text string) (string, string, bool) {
	m := numberedPairRe.FindStringSubmatch("\n" + text)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

func matchLabeledHeadings(text string) (string, string, bool) {
	m := labeledRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

func matchBareSecondMarker(text string) (string, string, bool) {
	loc := bareSecondRe.FindStringIndex(text)
	if loc == nil {
		return "", "", false
	}
	body := strings.TrimSpace(leadingOneRe.ReplaceAllString(text[:loc[0]], ""))
	return body, strings.TrimSpace(text[loc[1]:]), true
}

// splitNotes turns a notes block into individual notes: split on newline
// runs, drop blanks, strip one leading enumeration/bullet marker per line.
func splitNotes(block string) []string {
	var notes []string
	for _, line := range noteLineSplitRe.Split(block, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(noteMarkerRe.ReplaceAllString(line, ""))
		if line != "" {
			notes = append(notes, line)
		}
	}
	return notes
}

// reclassify rescans a body whose notes came back empty for note markers
// that leaked into it, splitting at the first one found. Guards against
// the model interleaving notes inside the first numbered block.
func reclassify(body string) (string, []string) {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if !isNoteMarkerLine(line) {
			continue
		}
		before := strings.TrimSpace(strings.Join(lines[:i], "\n"))
		rest := append([]string(nil), lines[i:]...)
		if headingPrefixRe.MatchString(rest[0]) {
			rest[0] = headingPrefixRe.ReplaceAllString(rest[0], "")
		}
		return before, splitNotes(strings.Join(rest, "\n"))
	}
	return body, nil
}

func isNoteMarkerLine(line string) bool {
	return secondMarkerLineRe.MatchString(line) ||
		headingPrefixRe.MatchString(line) ||
		bulletLineRe.MatchString(line)
}

// finishBody trims and unquotes the body, then walks the fallback chain
// when it came out empty: the remainder cut at the first note marker, the
// raw response cut the same way, and finally the placeholder.
func finishBody(body, remaining, raw string) string {
	body = stripEnclosingQuotes(strings.TrimSpace(body))
	if body != "" {
		return body
	}
	if b := strings.TrimSpace(truncateAtNoteMarker(remaining)); b != "" {
		return stripEnclosingQuotes(b)
	}
	if b := strings.TrimSpace(truncateAtNoteMarker(raw)); b != "" {
		return stripEnclosingQuotes(b)
	}
	return Placeholder
}

func truncateAtNoteMarker(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if isNoteMarkerLine(line) {
			return strings.Join(lines[:i], "\n")
		}
	}
	return text
}

// stripEnclosingQuotes removes a single pair of matching quote characters
// wrapping the whole string. One layer only.
func stripEnclosingQuotes(s string) string {
	if len(s) >= 2 {
		if first := s[0]; (first == '"' || first == '\'') && s[len(s)-1] == first {
			return strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	if strings.HasPrefix(s, "“") && strings.HasSuffix(s, "”") {
		return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "“"), "”"))
	}
	return s
}
