package docx

import (
	"regexp"
	"sort"
	"strings"
)

// placeholderRe matches one non-nested double-brace token, delimiters included.
var placeholderRe = regexp.MustCompile(`\{\{.*?\}\}`)

// Placeholders returns the distinct raw placeholder tokens found in the
// document body, sorted. Both body paragraphs and table-cell paragraphs are
// scanned; a token split across formatting runs is still found because run
// texts are joined per paragraph before matching.
func (p *Package) Placeholders() []string {
	seen := make(map[string]struct{})
	for _, par := range p.paragraphs() {
		for _, m := range placeholderRe.FindAllString(p.paragraphText(par), -1) {
			seen[m] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for tok := range seen {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// FieldNames returns the trimmed inner names of all placeholders,
// e.g. "{{ order_date }}" -> "order_date". Sorted, distinct.
func (p *Package) FieldNames() []string {
	tokens := p.Placeholders()
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		seen[TrimToken(tok)] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// TrimToken strips the double-brace delimiters and surrounding whitespace
// from a raw placeholder token.
func TrimToken(tok string) string {
	tok = strings.TrimPrefix(tok, "{{")
	tok = strings.TrimSuffix(tok, "}}")
	return strings.TrimSpace(tok)
}

// paragraphs returns every <w:p> span in the body, including paragraphs
// inside table cells (w:p never nests).
func (p *Package) paragraphs() []span {
	return childElements(p.doc, "w:p", span{0, len(p.doc)})
}

// paragraphText joins the unescaped contents of a paragraph's text runs.
func (p *Package) paragraphText(par span) string {
	var b strings.Builder
	for _, ts := range textSpans(p.doc, par) {
		b.WriteString(unescapeXML(string(p.doc[ts.content.start:ts.content.end])))
	}
	return b.String()
}
