package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"nova-hris/internal/shared/timeutil"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Time Logs"
)

var csvHeader = []string{"Log Date", "Employee Name", "Time In", "Time Out"}

func Filename(start, end, format string) string {
	return fmt.Sprintf("time_logs_report_%s_to_%s.%s", start, end, format)
}

func RenderCSV(r AttendanceReport, loc *time.Location) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, row := range r.Rows {
		record := []string{
			row.Date,
			row.EmployeeName,
			timeutil.Format12h(row.TimeIn, loc),
			timeutil.Format12h(row.TimeOut, loc),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func RenderXLSX(r AttendanceReport, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Log Date", "Employee ID", "Employee Name", "Department", "Position", "Time In", "Time Out", "Status"}
	widths := []float64{14, 14, 28, 20, 20, 12, 12, 12}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, row := range r.Rows {
		values := []interface{}{
			row.Date,
			row.EmployeeID,
			row.EmployeeName,
			row.Department,
			row.Position,
			timeutil.Format12h(row.TimeIn, loc),
			timeutil.Format12h(row.TimeOut, loc),
			row.Status,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
