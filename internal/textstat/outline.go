package textstat

import "regexp"

// Heading is one markdown heading of a body.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// headingPattern matches ATX headings (h1-h6) at the start of a line.
// Trailing spaces, tabs and closing hashes are not part of the text.
var headingPattern = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+([^\n]*?)(?:[ \t]+#+)?[ \t]*$`)

// fencePattern matches fenced code block delimiters (``` or ~~~) at the start
// of a line, with up to 3 spaces of indentation.
var fencePattern = regexp.MustCompile("(?m)^[ ]{0,3}(`{3,}|~{3,})")

// Outline returns the headings of text in order, skipping those inside
// fenced code blocks. Returns nil when there are none.
func Outline(text string) []Heading {
	matches := headingPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	fences := fencedRanges(text)
	var out []Heading
	for _, m := range matches {
		// m: [fullStart, fullEnd, hashStart, hashEnd, textStart, textEnd]
		if insideFence(m[0], fences) {
			continue
		}
		name := text[m[4]:m[5]]
		if name == "" {
			continue
		}
		out = append(out, Heading{Level: m[3] - m[2], Text: name})
	}
	return out
}

// fencedRanges returns byte ranges [start, end) of closed fenced code blocks.
// A closing fence uses the opening character and is at least as long.
func fencedRanges(text string) [][2]int {
	matches := fencePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) < 2 {
		return nil
	}

	var ranges [][2]int
	var openChar byte
	var openLen, openStart int
	inFence := false

	for _, m := range matches {
		fence := text[m[2]:m[3]]
		switch {
		case !inFence:
			openChar, openLen, openStart = fence[0], len(fence), m[0]
			inFence = true
		case fence[0] == openChar && len(fence) >= openLen:
			ranges = append(ranges, [2]int{openStart, m[1]})
			inFence = false
		}
	}
	return ranges
}

func insideFence(pos int, ranges [][2]int) bool {
	for _, r := range ranges {
		if pos >= r[0] && pos < r[1] {
			return true
		}
	}
	return false
}
