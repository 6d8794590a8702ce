package planner

import (
	"fmt"
	"time"

	"smartplates/models"
)

// ViewMode selects which projection of the store a view renders.
type ViewMode string

const (
	ViewToday ViewMode = "today"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// Valid reports whether the mode is one of the three supported views.
func (m ViewMode) Valid() bool {
	return m == ViewToday || m == ViewWeek || m == ViewMonth
}

// Direction moves the navigation cursor.
type Direction string

const (
	StepPrevious Direction = "previous"
	StepNext     Direction = "next"
	StepToday    Direction = "today"
)

// monthGridCells is 6 full Sunday-first weeks, enough for any month.
const monthGridCells = 42

// DayCell is one rendered day in a view.
type DayCell struct {
	Date           time.Time        `json:"date"`
	IsToday        bool             `json:"isToday"`
	IsCurrentMonth bool             `json:"isCurrentMonth"`
	Meals          *models.DayMeals `json:"meals"`
}

// ViewModel is what a view renders: the cursor, a label for the visible
// range, and one cell per visible day.
type ViewModel struct {
	Mode       ViewMode  `json:"mode"`
	Cursor     time.Time `json:"cursor"`
	RangeLabel string    `json:"rangeLabel"`
	Days       []DayCell `json:"days"`
	Stats      Stats     `json:"stats"`
}

// Project derives the view model for the given mode and cursor from the
// store. Today and month projections only read; the week projection lazily
// creates the cursor's plan because a week page always shows seven
// editable days.
func Project(mode ViewMode, cursor time.Time, store *Store, now time.Time) ViewModel {
	cursor = Midnight(cursor)
	today := Midnight(now)

	switch mode {
	case ViewToday:
		return projectToday(cursor, store, today)
	case ViewMonth:
		return projectMonth(cursor, store, today)
	default:
		return projectWeek(cursor, store, today)
	}
}

func projectToday(cursor time.Time, store *Store, today time.Time) ViewModel {
	cell := DayCell{
		Date:           cursor,
		IsToday:        cursor.Equal(today),
		IsCurrentMonth: true,
	}
	var stats Stats
	if plan := store.GetForDate(cursor); plan != nil {
		if day := plan.Day(dayIndexOf(plan, cursor)); day != nil {
			cell.Meals = day
		}
		stats = PlanStats(plan)
	}
	if cell.Meals == nil {
		cell.Meals = &models.DayMeals{Date: cursor}
	}
	return ViewModel{
		Mode:       ViewToday,
		Cursor:     cursor,
		RangeLabel: cursor.Format("Monday, January 2, 2006"),
		Days:       []DayCell{cell},
		Stats:      stats,
	}
}

func projectWeek(cursor time.Time, store *Store, today time.Time) ViewModel {
	plan := store.GetOrCreate(cursor)
	cells := make([]DayCell, models.DaysPerWeek)
	for i := range cells {
		date := plan.Days[i].Date
		cells[i] = DayCell{
			Date:           date,
			IsToday:        date.Equal(today),
			IsCurrentMonth: date.Month() == cursor.Month(),
			Meals:          &plan.Days[i],
		}
	}
	label := fmt.Sprintf("%s – %s",
		plan.WeekStartDate.Format("Jan 2"),
		plan.WeekEndDate.Format("Jan 2, 2006"))
	return ViewModel{
		Mode:       ViewWeek,
		Cursor:     cursor,
		RangeLabel: label,
		Days:       cells,
		Stats:      PlanStats(plan),
	}
}

func projectMonth(cursor time.Time, store *Store, today time.Time) ViewModel {
	firstOfMonth := Midnight(time.Date(cursor.Year(), cursor.Month(), 1, 12, 0, 0, 0, cursor.Location()))
	// The month grid is Sunday-first, unlike plans which start on Monday.
	gridStart := AddDays(firstOfMonth, -int(firstOfMonth.Weekday()))

	cells := make([]DayCell, monthGridCells)
	for i := range cells {
		date := AddDays(gridStart, i)
		cell := DayCell{
			Date:           date,
			IsToday:        date.Equal(today),
			IsCurrentMonth: date.Month() == cursor.Month(),
		}
		if plan := store.GetForDate(date); plan != nil {
			if day := plan.Day(dayIndexOf(plan, date)); day != nil {
				cell.Meals = day
			}
		}
		if cell.Meals == nil {
			// Weeks never visited render as empty days, not holes.
			cell.Meals = &models.DayMeals{Date: date}
		}
		cells[i] = cell
	}
	return ViewModel{
		Mode:       ViewMonth,
		Cursor:     cursor,
		RangeLabel: cursor.Format("January 2006"),
		Days:       cells,
		Stats:      StoreStats(store),
	}
}

// dayIndexOf locates date within the plan's week, or -1 when the date lies
// outside it. Matching is by calendar date; duration arithmetic miscounts
// across weeks containing a DST transition.
func dayIndexOf(plan *models.MealPlan, date time.Time) int {
	y, m, d := date.Date()
	for i := range plan.Days {
		py, pm, pd := plan.Days[i].Date.Date()
		if py == y && pm == m && pd == d {
			return i
		}
	}
	return -1
}

// Step moves the cursor one unit for the given view mode. It never touches
// the store: navigating to an unvisited week must not create a plan.
func Step(mode ViewMode, cursor time.Time, dir Direction, now time.Time) time.Time {
	cursor = Midnight(cursor)
	if dir == StepToday {
		return Midnight(now)
	}
	sign := 1
	if dir == StepPrevious {
		sign = -1
	}
	switch mode {
	case ViewToday:
		return AddDays(cursor, sign)
	case ViewMonth:
		return Midnight(cursor.AddDate(0, sign, 0))
	default:
		return AddDays(cursor, sign*models.DaysPerWeek)
	}
}
