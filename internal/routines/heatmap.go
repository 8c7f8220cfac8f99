package routines

import (
	"iter"
	"time"

	"github.com/julianstephens/daybook/internal/constants"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/utils"
)

// Cell is one day of a routine's heatmap.
type Cell struct {
	Date      time.Time
	Key       string
	Scheduled bool
	Completed bool
	Past      bool
}

// Heatmap yields one cell per day from the first day of the month two
// months before today through the last day of today's month.
func Heatmap(r models.Routine, today time.Time) iter.Seq[Cell] {
	start := utils.FirstOfMonth(today, -constants.HeatmapMonthsBack)
	end := utils.LastOfMonth(today)
	todayStart := utils.StartOfDay(today)

	return func(yield func(Cell) bool) {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			key := utils.DayKey(d)
			cell := Cell{
				Date:      d,
				Key:       key,
				Scheduled: r.ScheduledOn(models.WeekdayOf(d)),
				Completed: r.CompletedOn(key),
				Past:      d.Before(todayStart),
			}
			if !yield(cell) {
				return
			}
		}
	}
}

// Weeks chunks cells into rows of seven in sequence order. Rows are not
// aligned to a week start; the last row may be short.
func Weeks(cells iter.Seq[Cell]) [][]Cell {
	var rows [][]Cell
	var row []Cell
	for c := range cells {
		row = append(row, c)
		if len(row) == constants.HeatmapRowSize {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
