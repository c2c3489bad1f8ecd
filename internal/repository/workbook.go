package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

var ErrMissingColumn = errors.New("required column is missing")

// Workbook columns, matched case-insensitively against the header row.
const (
	colKanji    = "kanji"
	colMeaning  = "meaning"
	colOn       = "on"
	colKun      = "kun"
	colReadings = "readings"
	colWords    = "words"
	colExamples = "examples"
	colWeek     = "week"
	colDay      = "day"
	colTheme    = "theme"
)

// readWorkbook loads records from the first sheet of an XLSX file.
// The first row is a header; rows without a kanji cell are skipped.
func readWorkbook(path string) ([]entities.Kanji, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := header[colKanji]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, colKanji)
	}

	cell := func(row []string, col string) string {
		i, ok := header[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]entities.Kanji, 0, len(rows)-1)
	for _, row := range rows[1:] {
		symbol := cell(row, colKanji)
		if symbol == "" {
			continue
		}

		k := entities.Kanji{
			Symbol:   symbol,
			Meaning:  cell(row, colMeaning),
			Words:    splitList(cell(row, colWords)),
			Examples: parseExamples(cell(row, colExamples)),
			Week:     atoiOr(cell(row, colWeek), 0),
			Day:      atoiOr(cell(row, colDay), 0),
			Theme:    cell(row, colTheme),
		}

		on, kun := splitList(cell(row, colOn)), splitList(cell(row, colKun))
		if len(on) > 0 || len(kun) > 0 {
			k.Readings = entities.GroupedReadings(on, kun)
		} else {
			k.Readings = entities.FlatReadings(splitList(cell(row, colReadings))...)
		}

		out = append(out, k.Normalize())
	}

	return out, nil
}

// splitList splits a multi-valued cell on the Japanese or Latin comma.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '、' || r == ','
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseExamples reads "japanese|russian" pairs separated by ';'.
func parseExamples(s string) []entities.Example {
	var out []entities.Example
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		jp, ru, ok := strings.Cut(item, "|")
		if !ok {
			out = append(out, entities.Example{Kind: entities.ExampleText, Japanese: item})
			continue
		}
		out = append(out, entities.Example{
			Kind:        entities.ExampleLong,
			Japanese:    strings.TrimSpace(jp),
			Translation: strings.TrimSpace(ru),
		})
	}
	return out
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
