package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"smartplates/models"

	"github.com/hibiken/asynq"
)

const TypeMealReminder = "meal:reminder"

// NewMealReminderTask builds the asynq task for one scheduled reminder.
func NewMealReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeMealReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// RemindersForDay builds one reminder per non-empty bucket of the given
// day, fired at conventional meal times.
func RemindersForDay(plan *models.MealPlan, dayIndex int) []models.ReminderPayload {
	day := plan.Day(dayIndex)
	if day == nil {
		return nil
	}
	var out []models.ReminderPayload
	for _, mt := range models.MealTypes {
		slots := *day.Bucket(mt)
		if len(slots) == 0 {
			continue
		}
		name := slots[0].RecipeName
		if name == "" {
			name = "your planned meal"
		}
		body := fmt.Sprintf("Time to prep %s", name)
		if len(slots) > 1 {
			body = fmt.Sprintf("Time to prep %s and %d more", name, len(slots)-1)
		}
		out = append(out, models.ReminderPayload{
			UserID:   plan.UserID,
			PlanID:   plan.ID,
			Date:     day.Date.Format("2006-01-02"),
			MealType: string(mt),
			Title:    fmt.Sprintf("Upcoming %s", mt),
			Body:     body,
		})
	}
	return out
}

// FireTime maps a meal type to its reminder time on the given date.
func FireTime(date time.Time, mt models.MealType) time.Time {
	hour := 17
	switch mt {
	case models.MealBreakfast:
		hour = 7
	case models.MealLunch:
		hour = 11
	case models.MealSnacks:
		hour = 15
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, date.Location())
}
