package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/tocgraft/internal/doctree"
)

// CSVParser handles CSV files. The file name becomes an <h1>, and rows are
// grouped into batches, each under its own <h2> with a table.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := doctree.Document(
		doctree.Element("h1", nil, doctree.Text(strings.TrimSuffix(filename, ".csv"))),
	)

	if len(records) == 0 {
		return doc, nil
	}

	// First row is headers.
	headers := records[0]

	// Group rows into batches of 20 for manageable sections.
	const batchSize = 20
	dataRows := records[1:]
	ids := anchors{}

	for i := 0; i < len(dataRows); i += batchSize {
		end := min(i+batchSize, len(dataRows))
		title := fmt.Sprintf("Rows %d-%d", i+2, end+1) // 1-indexed, skip header

		doc.Append(doctree.Element("h2", []doctree.Attr{{Key: "id", Val: ids.next(title)}}, doctree.Text(title)))
		doc.Append(csvTable(headers, dataRows[i:end]))
	}

	return doc, nil
}

func csvTable(headers []string, rows [][]string) *doctree.Node {
	head := doctree.Element("tr", nil)
	for _, h := range headers {
		head.Append(doctree.Element("th", nil, doctree.Text(h)))
	}

	body := doctree.Element("tbody", nil)
	for _, row := range rows {
		tr := doctree.Element("tr", nil)
		for _, cell := range row {
			tr.Append(doctree.Element("td", nil, doctree.Text(cell)))
		}
		body.Append(tr)
	}

	return doctree.Element("table", nil, doctree.Element("thead", nil, head), body)
}
