package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"github.com/yeai-tech/catalog-api/internal/importer"
)

// createTestExcel creates an in-memory Excel file for testing.
func createTestExcel(t *testing.T, rows [][]string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	sheetName := "Sheet1"

	headers := []string{"post_title", "post_link", "post_category", "post_price", "post_description", "post_view"}
	for i, h := range headers {
		cellName, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cellName, h); err != nil {
			t.Fatalf("failed to set header cell: %v", err)
		}
	}

	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cellName, val); err != nil {
				t.Fatalf("failed to set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to write Excel file: %v", err)
	}

	return bytes.NewReader(buf.Bytes())
}

func TestValidateRow(t *testing.T) {
	tests := []struct {
		name    string
		row     importer.PostRow
		wantErr string
	}{
		{
			name: "valid row",
			row: importer.PostRow{
				Row:         2,
				Title:       "ChatDraft",
				Link:        "https://chatdraft.example.com",
				Category:    "Writing",
				Price:       "Freemium",
				Description: "Drafting assistant",
				Views:       42,
			},
			wantErr: "",
		},
		{
			name: "missing title",
			row: importer.PostRow{
				Row:      2,
				Link:     "https://example.com",
				Category: "Writing",
			},
			wantErr: "post_title is required",
		},
		{
			name: "missing link",
			row: importer.PostRow{
				Row:      2,
				Title:    "ChatDraft",
				Category: "Writing",
			},
			wantErr: "post_link is required",
		},
		{
			name: "invalid link scheme",
			row: importer.PostRow{
				Row:      2,
				Title:    "ChatDraft",
				Link:     "ftp://example.com",
				Category: "Writing",
			},
			wantErr: "post_link must start with http:// or https://",
		},
		{
			name: "missing category",
			row: importer.PostRow{
				Row:   2,
				Title: "ChatDraft",
				Link:  "https://example.com",
			},
			wantErr: "post_category is required",
		},
		{
			name: "negative views",
			row: importer.PostRow{
				Row:      2,
				Title:    "ChatDraft",
				Link:     "https://example.com",
				Category: "Writing",
				Views:    -1,
			},
			wantErr: "post_view must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := importer.ValidateRow(tt.row)
			if got != tt.wantErr {
				t.Errorf("ValidateRow() = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestParseExcelFile(t *testing.T) {
	tests := []struct {
		name           string
		rows           [][]string
		wantRowCount   int
		wantErrorCount int
		wantErrorMsg   string
	}{
		{
			name: "valid file with two posts",
			rows: [][]string{
				{"ChatDraft", "https://chatdraft.example.com", "Writing", "Freemium", "Drafting assistant", "10"},
				{"PixelForge", "https://pixelforge.example.com", "Design", "Free", "Image generator", "3"},
			},
			wantRowCount:   2,
			wantErrorCount: 0,
		},
		{
			name: "missing title reported with row number",
			rows: [][]string{
				{"", "https://example.com", "Writing", "Free", "", "0"},
			},
			wantRowCount:   0,
			wantErrorCount: 1,
			wantErrorMsg:   "post_title is required",
		},
		{
			name: "non-integer views",
			rows: [][]string{
				{"ChatDraft", "https://example.com", "Writing", "Free", "", "many"},
			},
			wantRowCount:   0,
			wantErrorCount: 1,
			wantErrorMsg:   "post_view must be an integer",
		},
		{
			name: "valid rows survive an invalid one",
			rows: [][]string{
				{"ChatDraft", "https://example.com", "Writing", "Free", "", "1"},
				{"", "https://example.com", "Writing", "Free", "", "0"},
				{"PixelForge", "https://pixelforge.example.com", "Design", "Paid", "", "2"},
			},
			wantRowCount:   2,
			wantErrorCount: 1,
			wantErrorMsg:   "post_title is required",
		},
		{
			name:           "empty file (header only)",
			rows:           [][]string{},
			wantRowCount:   0,
			wantErrorCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := createTestExcel(t, tt.rows)

			rows, importErrors := importer.ParseExcelFile(reader)

			if len(rows) != tt.wantRowCount {
				t.Errorf("ParseExcelFile() got %d rows, want %d", len(rows), tt.wantRowCount)
			}
			if len(importErrors) != tt.wantErrorCount {
				t.Errorf("ParseExcelFile() got %d errors, want %d", len(importErrors), tt.wantErrorCount)
			}
			if tt.wantErrorMsg != "" && len(importErrors) > 0 {
				if !strings.Contains(importErrors[0].Error, tt.wantErrorMsg) {
					t.Errorf("ParseExcelFile() error = %q, want to contain %q", importErrors[0].Error, tt.wantErrorMsg)
				}
			}
		})
	}
}

func TestParseExcelFileRowNumbers(t *testing.T) {
	reader := createTestExcel(t, [][]string{
		{"ChatDraft", "https://example.com", "Writing", "Free", "", "1"},
		{"", "https://example.com", "Writing", "Free", "", "0"},
	})

	_, importErrors := importer.ParseExcelFile(reader)
	if len(importErrors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(importErrors))
	}
	// Header is row 1, so the bad second data row is spreadsheet row 3.
	if importErrors[0].Row != 3 {
		t.Errorf("error Row = %d, want 3", importErrors[0].Row)
	}
}

func TestToPost(t *testing.T) {
	row := importer.PostRow{
		Row:         2,
		Title:       "  ChatDraft  ",
		Link:        "https://chatdraft.example.com",
		Category:    "Writing",
		Price:       "Freemium",
		Description: "Drafting assistant",
		Views:       42,
	}

	post := importer.ToPost(row)

	if post.ID == "" {
		t.Error("ToPost() did not assign an id")
	}
	if post.Title != "ChatDraft" {
		t.Errorf("Title = %q, want %q", post.Title, "ChatDraft")
	}
	if post.Category != "Writing" {
		t.Errorf("Category = %q, want %q", post.Category, "Writing")
	}
	if post.Views != 42 {
		t.Errorf("Views = %d, want 42", post.Views)
	}
	if post.CreatedAt.IsZero() {
		t.Error("ToPost() left CreatedAt zero")
	}
}
