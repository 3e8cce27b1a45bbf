package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/shrimpsizemoose/eduspace/internal/models"
	"github.com/shrimpsizemoose/eduspace/internal/scoring"
)

const (
	GradesSheet  = "Grades"
	SummarySheet = "Summary"
)

// Workbook lays the grade-book out as two sheets: every row, then one average per student.
func Workbook(book models.GradeBook) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", GradesSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}

	students := make([]string, 0, len(book))
	for name := range book {
		students = append(students, name)
	}
	sort.Strings(students)

	grades := [][]interface{}{{"Student", "Subject", "Score", "Comment"}}
	summary := [][]interface{}{{"Student", "Average"}}
	for _, name := range students {
		rows := book[name]
		for _, r := range rows {
			grades = append(grades, []interface{}{name, r.Subject, scoreCell(r.Score), r.Comment})
		}
		var avg interface{} = ""
		if v, ok := scoring.RowAverage(rows); ok {
			avg = v
		}
		summary = append(summary, []interface{}{name, avg})
	}

	if err := writeRows(f, GradesSheet, grades); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeRows(f, SummarySheet, summary); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteWorkbook streams the xlsx to w.
func WriteWorkbook(book models.GradeBook, w io.Writer) error {
	f, err := Workbook(book)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// numeric scores go in as numbers so the spreadsheet can sum them
func scoreCell(score string) interface{} {
	if v, ok := scoring.ParseScore(score); ok {
		return v
	}
	return score
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
