package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rcliao/studycards/internal/store"
)

// parseXLSX reads the first sheet: column A is the term, column B the definition.
func parseXLSX(r io.Reader, name string) ([]store.SetParams, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return tableSet(rows, name)
}

// parseCSV reads rows laid out like the spreadsheet format.
func parseCSV(r io.Reader, name string) ([]store.SetParams, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return tableSet(rows, name)
}

func tableSet(rows [][]string, name string) ([]store.SetParams, error) {
	set := store.SetParams{Title: titleFromName(name)}
	for i, row := range rows {
		term, def := cell(row, 0), cell(row, 1)
		if term == "" && def == "" {
			continue
		}
		if i == 0 && strings.EqualFold(term, "term") {
			continue
		}
		if def == "" {
			return nil, fmt.Errorf("row %d: missing definition for %q", i+1, term)
		}
		if term == "" {
			return nil, fmt.Errorf("row %d: missing term", i+1)
		}
		set.Cards = append(set.Cards, store.CardParams{Term: term, Definition: def})
	}
	return []store.SetParams{set}, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
