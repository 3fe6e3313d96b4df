package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

const sheetName = "Recipes"

var header = []string{
	"id", "title", "description", "prep_time", "cook_time", "servings",
	"tags", "ingredients", "instructions", "notes", "source_url", "date_added", "image",
}

// row flattens a recipe; list fields are newline separated so they stay readable in a cell.
func row(r recipe.Recipe) []string {
	return []string{
		r.ID, r.Title, r.Description, r.PrepTime, r.CookTime, r.Servings,
		strings.Join(r.Tags, ", "),
		strings.Join(recipe.NonBlank(r.Ingredients), "\n"),
		strings.Join(recipe.NonBlank(r.Instructions), "\n"),
		r.Notes, r.SourceURL, r.DateAdded, r.Image,
	}
}

// ToFile writes recipes to path; the format follows the extension (.csv or .xlsx).
// Missing parent directories are created.
func ToFile(path string, recipes []recipe.Recipe) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" {
		return fmt.Errorf("%w: %q (use .csv or .xlsx)", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	switch ext {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()

		if err := WriteCSV(f, recipes); err != nil {
			return err
		}
		return f.Close()
	default:
		return WriteXLSX(path, recipes)
	}
}

func WriteCSV(w io.Writer, recipes []recipe.Recipe) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range recipes {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("failed to write CSV row %s: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteXLSX(path string, recipes []recipe.Recipe) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	if err := sw.SetRow("A1", toCells(header)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range recipes {
		cellAddr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cellAddr, toCells(row(r))); err != nil {
			return fmt.Errorf("failed to write row %s: %w", r.ID, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
