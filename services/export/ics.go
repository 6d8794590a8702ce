package export

import (
	"fmt"
	"strings"

	"smartplates/models"
)

// RenderICS renders a meal plan snapshot as an iCalendar document with one
// all-day event per day that has at least one meal. The plan is read only;
// callers pass a snapshot, never live store state.
func RenderICS(plan *models.MealPlan) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//SmartPlates//Meal Planner//EN\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")

	stamp := plan.UpdatedAt.UTC().Format("20060102T150405Z")
	for i := range plan.Days {
		day := &plan.Days[i]
		if day.SlotCount() == 0 {
			continue
		}
		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:%s-day%d@smartplates\r\n", plan.ID, i)
		fmt.Fprintf(&b, "DTSTAMP:%s\r\n", stamp)
		fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\r\n", day.Date.Format("20060102"))
		fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\r\n", day.Date.AddDate(0, 0, 1).Format("20060102"))
		fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeText(daySummary(day)))
		if desc := dayDescription(day); desc != "" {
			fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", escapeText(desc))
		}
		b.WriteString("END:VEVENT\r\n")
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

// FileName suggests a download name for the plan's calendar file.
func FileName(plan *models.MealPlan) string {
	return fmt.Sprintf("meal-plan-%s.ics", plan.WeekStartDate.Format("2006-01-02"))
}

func daySummary(day *models.DayMeals) string {
	n := day.SlotCount()
	if n == 1 {
		return "1 planned meal"
	}
	return fmt.Sprintf("%d planned meals", n)
}

func dayDescription(day *models.DayMeals) string {
	var lines []string
	appendBucket := func(label string, slots []models.MealSlot) {
		for _, slot := range slots {
			name := slot.RecipeName
			if name == "" {
				name = "(unnamed meal)"
			}
			lines = append(lines, fmt.Sprintf("%s: %s", label, name))
		}
	}
	appendBucket("Breakfast", day.Breakfast)
	appendBucket("Lunch", day.Lunch)
	appendBucket("Dinner", day.Dinner)
	appendBucket("Snacks", day.Snacks)
	if day.DailyNotes != "" {
		lines = append(lines, "Notes: "+day.DailyNotes)
	}
	return strings.Join(lines, "\n")
}

// escapeText escapes the characters iCalendar text values reserve.
func escapeText(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
