package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/thushan/holocron/internal/core/domain"
)

const (
	DefaultSheetName = "People"
	defaultSheet     = "Sheet1"
	columnWidth      = 18
)

// Columns are the exported headers in order
var Columns = []string{
	"Name", "Height", "Mass", "Hair Color", "Skin Color", "Eye Color",
	"Birth Year", "Gender", "Homeworld", "Films", "Species", "Vehicles",
	"Starships", "Created", "Edited", "URL",
}

func row(r domain.Record) []any {
	return []any{
		r.Name, r.Height, r.Mass, r.HairColor, r.SkinColor, r.EyeColor,
		r.BirthYear, r.Gender, r.Homeworld,
		strings.Join(r.Films, ", "),
		strings.Join(r.Species, ", "),
		strings.Join(r.Vehicles, ", "),
		strings.Join(r.Starships, ", "),
		r.Created, r.Edited, r.URL,
	}
}

// WriteXLSX writes records to a new workbook at path and returns the size
// of the written file
func WriteXLSX(path, sheet string, records []domain.Record) (int64, error) {
	if sheet == "" {
		sheet = DefaultSheetName
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return 0, fmt.Errorf("naming sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return 0, fmt.Errorf("creating stream writer: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, err
	}
	if err := sw.SetColWidth(1, len(Columns), columnWidth); err != nil {
		return 0, err
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: c}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := sw.SetRow(cell, row(r)); err != nil {
			return 0, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return 0, fmt.Errorf("flushing sheet: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("saving %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// FileName builds a timestamped export file name such as
// "holocron-people-20261017-153000.xlsx"
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("holocron-%s-%s.xlsx", prefix, now.Format("20060102-150405"))
}
