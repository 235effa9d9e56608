// Package dataset loads project tables from CSV files into typed records,
// resolving the loose column naming the source exports use.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/project-explorer/backend/internal/project"
)

// ErrNoRecords is returned when a file parses but contains no data rows.
// Distinct from a per-query "no results" condition.
var ErrNoRecords = errors.New("dataset: no project records found")

// columnAliases maps the column names observed across source exports onto
// canonical field names. Matching is case-insensitive.
var columnAliases = map[string]string{
	"title":                "title",
	"name":                 "title",
	"project_name":         "title",
	"description":          "description",
	"detailed_description": "detailed_description",
	"ai_summary":           "ai_summary",
	"summary":              "ai_summary",
	"category":             "category",
	"subcategory":          "subcategory",
	"subcategory_1":        "subcategory",
	"sub_category":         "subcategory",
	"project_url":          "project_url",
	"url":                  "project_url",
	"website":              "project_url",
	"github_url":           "github_url",
	"github":               "github_url",
	"repo_url":             "github_url",
	"demo_url":             "demo_url",
	"github_stars":         "stars",
	"stars":                "stars",
	"downloads":            "downloads",
	"license":              "license",
	"x":                    "x",
	"y":                    "y",
	"z":                    "z",
}

// Load reads a CSV file of projects from disk.
func Load(path string) ([]project.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: opening %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a CSV project table. The first row must be a header; columns
// are resolved through the alias table and unknown columns are ignored.
// Record IDs are row indexes, stable for the lifetime of the corpus built
// from them. Defaults for missing fields are applied here, once, so
// downstream code never re-derives them.
func Parse(r io.Reader) ([]project.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoRecords
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: reading header: %w", err)
	}

	// canonical field -> column position
	columns := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := columnAliases[key]; ok {
			if _, taken := columns[canonical]; !taken {
				columns[canonical] = i
			}
		}
	}

	var records []project.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: reading row %d: %w", len(records)+1, err)
		}

		cell := func(field string) string {
			i, ok := columns[field]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := project.Record{
			ID:                  len(records),
			Title:               cell("title"),
			Description:         cell("description"),
			DetailedDescription: cell("detailed_description"),
			AISummary:           cell("ai_summary"),
			Category:            cell("category"),
			Subcategory:         cell("subcategory"),
			ProjectURL:          cell("project_url"),
			GitHubURL:           cell("github_url"),
			DemoURL:             cell("demo_url"),
			Stars:               parseInt(cell("stars")),
			Downloads:           parseInt(cell("downloads")),
			License:             cell("license"),
			Coordinates: project.Coordinates{
				X: parseFloat(cell("x")),
				Y: parseFloat(cell("y")),
				Z: parseFloat(cell("z")),
			},
		}
		rec.ApplyDefaults()
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	// Tolerate float-formatted counts ("123.0") from spreadsheet exports
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
