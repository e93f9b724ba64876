// Package importer parses bulk catalog imports from Excel spreadsheets.
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"github.com/yeai-tech/catalog-api/internal/models"
)

// Column indices for the Excel spreadsheet (0-based).
const (
	colTitle       = 0 // Column A
	colLink        = 1 // Column B
	colCategory    = 2 // Column C
	colPrice       = 3 // Column D
	colDescription = 4 // Column E
	colViews       = 5 // Column F

	headerRowIndex = 1 // Excel rows are 1-based, header is row 1
)

// PostRow represents a parsed row from the Excel spreadsheet.
type PostRow struct {
	Row         int // Excel row number (for error reporting)
	Title       string
	Link        string
	Category    string
	Price       string
	Description string
	Views       int64
}

// ImportError represents a validation error for a specific row.
type ImportError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ValidateRow validates a single row and returns an error message or empty string.
func ValidateRow(row PostRow) string {
	if strings.TrimSpace(row.Title) == "" {
		return "post_title is required"
	}
	if strings.TrimSpace(row.Link) == "" {
		return "post_link is required"
	}
	if !strings.HasPrefix(row.Link, "http://") && !strings.HasPrefix(row.Link, "https://") {
		return "post_link must start with http:// or https://"
	}
	if strings.TrimSpace(row.Category) == "" {
		return "post_category is required"
	}
	if row.Views < 0 {
		return "post_view must be non-negative"
	}
	return ""
}

// ParseExcelFile reads the first sheet, skips the header row, and returns
// the valid rows plus per-row validation errors. A malformed file is
// reported as a single error against row 0.
func ParseExcelFile(r io.Reader) ([]PostRow, []ImportError) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, []ImportError{{Row: 0, Error: fmt.Sprintf("open spreadsheet: %v", err)}}
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, []ImportError{{Row: 0, Error: fmt.Sprintf("read sheet %q: %v", sheet, err)}}
	}

	var rows []PostRow
	var importErrors []ImportError

	for i, cells := range raw {
		rowNum := i + 1
		if rowNum == headerRowIndex {
			continue
		}
		if isEmptyRow(cells) {
			continue
		}

		row, err := parseRow(rowNum, cells)
		if err != nil {
			importErrors = append(importErrors, ImportError{Row: rowNum, Error: err.Error()})
			continue
		}
		if msg := ValidateRow(row); msg != "" {
			importErrors = append(importErrors, ImportError{Row: rowNum, Error: msg})
			continue
		}
		rows = append(rows, row)
	}

	return rows, importErrors
}

// ToPost converts a validated row into a catalog post with a fresh id.
func ToPost(row PostRow) *models.Post {
	return &models.Post{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(row.Title),
		Link:        strings.TrimSpace(row.Link),
		Category:    strings.TrimSpace(row.Category),
		Price:       strings.TrimSpace(row.Price),
		Description: strings.TrimSpace(row.Description),
		Views:       row.Views,
		CreatedAt:   time.Now(),
	}
}

func parseRow(rowNum int, cells []string) (PostRow, error) {
	row := PostRow{
		Row:         rowNum,
		Title:       cell(cells, colTitle),
		Link:        cell(cells, colLink),
		Category:    cell(cells, colCategory),
		Price:       cell(cells, colPrice),
		Description: cell(cells, colDescription),
	}

	if raw := cell(cells, colViews); raw != "" {
		views, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return PostRow{}, fmt.Errorf("post_view must be an integer, got %q", raw)
		}
		row.Views = views
	}

	return row, nil
}

func cell(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
