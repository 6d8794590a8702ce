package models

// ShoppingItem is one aggregated ingredient line on a plan's shopping list.
type ShoppingItem struct {
	Name    string `bson:"name" json:"name"`
	Count   int    `bson:"count" json:"count"`
	Checked bool   `bson:"checked" json:"checked"`
}

// ReminderPayload is the asynq task body for a scheduled meal reminder.
type ReminderPayload struct {
	UserID   string `json:"userId"`
	PlanID   string `json:"planId"`
	Date     string `json:"date"`
	MealType string `json:"mealType"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}
