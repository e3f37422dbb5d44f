package docx

import (
	"bytes"
	"sort"
	"strings"
)

// Byte-level scanning over word/document.xml. WordprocessingML text lives
// only in <w:t> leaves and those never nest, so span arithmetic on the raw
// bytes is safe as long as table elements are depth-counted.

var (
	xmlEscaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;")
	xmlUnescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
)

func escapeXML(s string) string   { return xmlEscaper.Replace(s) }
func unescapeXML(s string) string { return xmlUnescaper.Replace(s) }

// span is a half-open byte range within the document body.
type span struct {
	start, end int
}

// textSpan locates one <w:t> element: the full element plus its content range.
type textSpan struct {
	open    span // "<w:t" through ">"
	content span // text between the tags; empty for self-closing
	outer   span // whole element
}

// findTag returns the offset of the next "<name" occurrence at or after from
// where the tag name ends there (followed by space, '>', or '/'). Returns -1
// if absent.
func findTag(b []byte, name string, from int) int {
	needle := []byte("<" + name)
	for {
		i := bytes.Index(b[from:], needle)
		if i < 0 {
			return -1
		}
		pos := from + i
		next := pos + len(needle)
		if next < len(b) {
			switch b[next] {
			case ' ', '>', '/', '\t', '\n', '\r':
				return pos
			}
		}
		from = pos + 1
	}
}

// element returns the span of the element whose open tag starts at open,
// counting nested elements of the same name. The second result is false when
// the document is truncated.
func element(b []byte, name string, open int) (span, bool) {
	gt := bytes.IndexByte(b[open:], '>')
	if gt < 0 {
		return span{}, false
	}
	if b[open+gt-1] == '/' {
		return span{open, open + gt + 1}, true
	}

	depth := 1
	pos := open + gt + 1
	closeTag := []byte("</" + name + ">")
	for depth > 0 {
		nextOpen := findTag(b, name, pos)
		nextClose := bytes.Index(b[pos:], closeTag)
		if nextClose < 0 {
			return span{}, false
		}
		nextClose += pos

		if nextOpen >= 0 && nextOpen < nextClose {
			// Self-closing nested tags do not change depth.
			g := bytes.IndexByte(b[nextOpen:], '>')
			if g < 0 {
				return span{}, false
			}
			if b[nextOpen+g-1] != '/' {
				depth++
			}
			pos = nextOpen + g + 1
			continue
		}

		depth--
		pos = nextClose + len(closeTag)
	}
	return span{open, pos}, true
}

// childElements returns the spans of the direct <name> children inside the
// given range, skipping occurrences nested in a deeper element of the same name.
func childElements(b []byte, name string, within span) []span {
	var out []span
	pos := within.start
	for {
		open := findTag(b, name, pos)
		if open < 0 || open >= within.end {
			return out
		}
		el, ok := element(b, name, open)
		if !ok || el.end > within.end {
			return out
		}
		out = append(out, el)
		pos = el.end
	}
}

// textSpans locates every <w:t> within the given range.
func textSpans(b []byte, within span) []textSpan {
	var out []textSpan
	pos := within.start
	for {
		open := findTag(b, "w:t", pos)
		if open < 0 || open >= within.end {
			return out
		}
		gt := bytes.IndexByte(b[open:], '>')
		if gt < 0 {
			return out
		}
		gt += open

		ts := textSpan{open: span{open, gt + 1}}
		if b[gt-1] == '/' {
			ts.content = span{gt + 1, gt + 1}
			ts.outer = span{open, gt + 1}
		} else {
			close := bytes.Index(b[gt:], []byte("</w:t>"))
			if close < 0 {
				return out
			}
			close += gt
			ts.content = span{gt + 1, close}
			ts.outer = span{open, close + len("</w:t>")}
		}
		out = append(out, ts)
		pos = ts.outer.end
	}
}

// edit is a pending byte-range replacement.
type edit struct {
	span
	replacement []byte
}

// applyEdits splices non-overlapping edits into b, right to left.
func applyEdits(b []byte, edits []edit) []byte {
	if len(edits) == 0 {
		return b
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var buf bytes.Buffer
	buf.Grow(len(b))
	pos := 0
	for _, e := range edits {
		buf.Write(b[pos:e.start])
		buf.Write(e.replacement)
		pos = e.end
	}
	buf.Write(b[pos:])
	return buf.Bytes()
}

// setTextContent builds the replacement bytes for one <w:t>: the (possibly
// augmented) open tag plus escaped text. xml:space is forced to "preserve"
// so substituted values keep their edge whitespace.
func setTextContent(b []byte, ts textSpan, text string) edit {
	openTag := string(b[ts.open.start:ts.open.end])
	selfClosing := strings.HasSuffix(openTag, "/>")

	if !strings.Contains(openTag, "xml:space") {
		if selfClosing {
			openTag = strings.TrimSuffix(openTag, "/>") + ` xml:space="preserve"/>`
		} else {
			openTag = strings.TrimSuffix(openTag, ">") + ` xml:space="preserve">`
		}
	}

	if selfClosing {
		// Reopen the element so it can carry content.
		openTag = strings.TrimSuffix(openTag, "/>") + ">"
		return edit{ts.outer, []byte(openTag + escapeXML(text) + "</w:t>")}
	}
	return edit{ts.outer, []byte(openTag + escapeXML(text) + "</w:t>")}
}
