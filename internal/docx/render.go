package docx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/asmelnikov/docgen-backend/internal/domain"
)

// OrderDateField is the placeholder every template must carry: the localized
// first business day of the generation month.
const OrderDateField = "order_date"

// Render substitutes data values for the document's placeholders in place.
//
// Placeholders are matched by their trimmed inner name. A placeholder with no
// data key is left verbatim and reported as a warning; a data key with no
// placeholder is reported as a warning; neither is fatal. A template without
// the order_date placeholder fails with domain.ErrMissingOrderDate before
// anything is modified.
//
// Substitution touches only the text runs a placeholder overlaps, so run
// formatting elsewhere in the paragraph is preserved.
func (p *Package) Render(data map[string]string) ([]string, error) {
	names := p.FieldNames()

	nameSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		nameSet[n] = struct{}{}
	}
	if _, ok := nameSet[OrderDateField]; !ok {
		return nil, fmt.Errorf("render: %w", domain.ErrMissingOrderDate)
	}

	var warnings []string
	for _, n := range names {
		if _, ok := data[n]; !ok {
			warnings = append(warnings, fmt.Sprintf("placeholder %q has no data value and was left as is", n))
		}
	}
	for k := range data {
		if _, ok := nameSet[k]; !ok {
			warnings = append(warnings, fmt.Sprintf("data key %q has no placeholder in the template", k))
		}
	}
	sort.Strings(warnings)

	var edits []edit
	for _, par := range p.paragraphs() {
		edits = append(edits, p.renderParagraph(par, data)...)
	}
	p.doc = applyEdits(p.doc, edits)

	return warnings, nil
}

// renderParagraph computes the text-run edits for one paragraph.
func (p *Package) renderParagraph(par span, data map[string]string) []edit {
	spans := textSpans(p.doc, par)
	if len(spans) == 0 {
		return nil
	}

	// Unescaped run texts plus their cumulative offsets in the joined text.
	texts := make([]string, len(spans))
	starts := make([]int, len(spans))
	total := 0
	for i, ts := range spans {
		texts[i] = unescapeXML(string(p.doc[ts.content.start:ts.content.end]))
		starts[i] = total
		total += len(texts[i])
	}
	full := strings.Join(texts, "")

	matches := placeholderRe.FindAllStringIndex(full, -1)
	if len(matches) == 0 {
		return nil
	}

	// Per-run replacement lists, applied right to left so earlier offsets
	// stay valid.
	type textEdit struct {
		start, end int
		repl       string
	}
	runEdits := make([][]textEdit, len(spans))
	changed := make([]bool, len(spans))

	addEdit := func(run, start, end int, repl string) {
		runEdits[run] = append([]textEdit{{start, end, repl}}, runEdits[run]...)
		changed[run] = true
	}

	runAt := func(off int) int {
		run := 0
		for i := range starts {
			if starts[i] <= off {
				run = i
			}
		}
		return run
	}

	replaced := false
	for i := len(matches) - 1; i >= 0; i-- {
		a, b := matches[i][0], matches[i][1]
		value, ok := data[TrimToken(full[a:b])]
		if !ok {
			continue // unresolved placeholders stay verbatim
		}
		replaced = true

		first, last := runAt(a), runAt(b-1)
		if first == last {
			addEdit(first, a-starts[first], b-starts[first], value)
			continue
		}
		addEdit(first, a-starts[first], len(texts[first]), value)
		for r := first + 1; r < last; r++ {
			addEdit(r, 0, len(texts[r]), "")
		}
		addEdit(last, 0, b-starts[last], "")
	}
	if !replaced {
		return nil
	}

	var edits []edit
	for i := range spans {
		if !changed[i] {
			continue
		}
		text := texts[i]
		for j := len(runEdits[i]) - 1; j >= 0; j-- {
			e := runEdits[i][j]
			text = text[:e.start] + e.repl + text[e.end:]
		}
		edits = append(edits, setTextContent(p.doc, spans[i], text))
	}
	return edits
}
