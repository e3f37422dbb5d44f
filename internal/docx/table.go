package docx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/asmelnikov/docgen-backend/internal/domain"
)

// MarkerPrefix is the sentinel every cell of the template's marker row starts
// with. The marker row shows where generated data rows go and which
// formatting they inherit.
const MarkerPrefix = "RC"

// ExpandTable replaces the marker row of the document's first table with one
// row per entry of rows, in order. Each generated row is a clone of the
// marker row, so fonts, paragraph alignment, borders, and cell widths carry
// over; only the cell texts change. Ragged rows are padded with empty cells,
// never rejected.
//
// Returns domain.ErrNoMarkerRow if the first table has no row whose every
// cell text begins with MarkerPrefix.
func (p *Package) ExpandTable(rows [][]string) error {
	tblOpen := findTag(p.doc, "w:tbl", 0)
	if tblOpen < 0 {
		return fmt.Errorf("expand table: %w", domain.ErrNoMarkerRow)
	}
	tbl, ok := element(p.doc, "w:tbl", tblOpen)
	if !ok {
		return fmt.Errorf("expand table: %w", domain.ErrBadDocument)
	}

	marker, ok := p.findMarkerRow(tbl)
	if !ok {
		return fmt.Errorf("expand table: %w", domain.ErrNoMarkerRow)
	}

	rowXML := p.doc[marker.start:marker.end]
	var buf bytes.Buffer
	buf.Grow(len(rowXML) * len(rows))
	for _, values := range rows {
		buf.Write(fillRow(rowXML, values))
	}

	p.doc = applyEdits(p.doc, []edit{{marker, buf.Bytes()}})
	return nil
}

// findMarkerRow returns the first top-level row of the table whose every cell
// text starts with MarkerPrefix.
func (p *Package) findMarkerRow(tbl span) (span, bool) {
	for _, row := range childElements(p.doc, "w:tr", tbl) {
		cells := childElements(p.doc, "w:tc", row)
		if len(cells) == 0 {
			continue
		}
		isMarker := true
		for _, cell := range cells {
			if !strings.HasPrefix(p.cellText(cell), MarkerPrefix) {
				isMarker = false
				break
			}
		}
		if isMarker {
			return row, true
		}
	}
	return span{}, false
}

// cellText joins the text runs of one cell.
func (p *Package) cellText(cell span) string {
	var b strings.Builder
	for _, ts := range textSpans(p.doc, cell) {
		b.WriteString(unescapeXML(string(p.doc[ts.content.start:ts.content.end])))
	}
	return b.String()
}

// fillRow clones the marker row's XML and writes values into its cells.
// The first text run of each cell receives the value (with the run's
// formatting intact); any further runs in the cell are emptied. Cells beyond
// len(values) become empty; values beyond the cell count are dropped.
func fillRow(rowXML []byte, values []string) []byte {
	row := span{0, len(rowXML)}

	var edits []edit
	for i, cell := range childElements(rowXML, "w:tc", row) {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		for j, ts := range textSpans(rowXML, cell) {
			if j == 0 {
				edits = append(edits, setTextContent(rowXML, ts, value))
			} else {
				edits = append(edits, setTextContent(rowXML, ts, ""))
			}
		}
	}
	return applyEdits(rowXML, edits)
}
