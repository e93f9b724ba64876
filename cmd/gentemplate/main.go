// Command gentemplate generates the Excel import template for catalog posts.
// Usage: go run cmd/gentemplate/main.go
package main

import (
	"log"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", "Posts"); err != nil {
		log.Fatal(err)
	}

	headers := []string{"post_title", "post_link", "post_category", "post_price", "post_description", "post_view"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Posts", cell, h); err != nil {
			log.Fatal(err)
		}
	}

	row1 := []string{
		"ChatDraft",
		"https://chatdraft.example.com",
		"Writing",
		"Freemium",
		"Assistant that turns bullet points into long-form drafts",
		"0",
	}
	for i, v := range row1 {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Posts", cell, v); err != nil {
			log.Fatal(err)
		}
	}

	row2 := []string{"PixelForge", "https://pixelforge.example.com", "Design", "Free", "", "0"}
	for i, v := range row2 {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Posts", cell, v); err != nil {
			log.Fatal(err)
		}
	}

	if _, err := f.NewSheet("Instructions"); err != nil {
		log.Fatal(err)
	}
	instructions := []string{
		"Column Descriptions:",
		"",
		"post_title - Required. Display name of the tool",
		"post_link - Required. Tool website (must start with http:// or https://)",
		"post_category - Required. Catalog category, e.g. 'Writing' or 'Design'",
		"post_price - Optional. Pricing label: Free, Freemium, Paid, ...",
		"post_description - Optional. Short description shown in listings",
		"post_view - Optional. Starting view count (default: 0)",
	}
	for i, line := range instructions {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			log.Fatal(err)
		}
		if err := f.SetCellValue("Instructions", cell, line); err != nil {
			log.Fatal(err)
		}
	}

	if err := os.MkdirAll("examples", 0755); err != nil {
		log.Fatal(err)
	}

	if err := f.SaveAs("examples/catalog-import-template.xlsx"); err != nil {
		log.Fatal(err)
	}
	log.Println("Created examples/catalog-import-template.xlsx")
}
