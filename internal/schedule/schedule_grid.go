package schedule

import (
	"fmt"
	"time"

	scheduleerrors "nova-hris/internal/schedule/errors"
)

// Cell is one calendar square. Day is 0 for padding cells.
type Cell struct {
	Day  int    `json:"day"`
	Date string `json:"date,omitempty"`
}

type Grid struct {
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Weeks [][]Cell `json:"weeks"`
}

// MonthGrid lays out a month as Sunday-first weeks of seven cells. Month is
// 1-based.
func MonthGrid(year, month int) (Grid, error) {
	if month < 1 || month > 12 {
		return Grid{}, scheduleerrors.ErrInvalidMonth
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	cells := make([]Cell, 0, 42)
	for i := 0; i < lead; i++ {
		cells = append(cells, Cell{})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{Day: d, Date: dateKey(year, month, d)})
	}
	for len(cells)%7 != 0 {
		cells = append(cells, Cell{})
	}

	weeks := make([][]Cell, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return Grid{Year: year, Month: month, Weeks: weeks}, nil
}

func dateKey(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
