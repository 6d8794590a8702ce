package models

import (
	"time"

	"github.com/google/uuid"
)

// MealType identifies one of the four buckets within a day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnacks    MealType = "snacks"
)

// MealTypes lists the buckets in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnacks}

// Valid reports whether mt names a known bucket.
func (mt MealType) Valid() bool {
	switch mt {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return true
	}
	return false
}

const (
	// DefaultServings is the serving count for a slot created without one.
	DefaultServings = 2
	MinServings     = 1
	MaxServings     = 20

	// DaysPerWeek is the number of DayMeals in a plan, Monday first.
	DaysPerWeek = 7
)

// MealSlot is a single planned meal attached to one day and one bucket.
type MealSlot struct {
	ID          string   `bson:"id" json:"id"`
	RecipeID    string   `bson:"recipeId" json:"recipeId"`
	RecipeName  string   `bson:"recipeName" json:"recipeName"`
	Servings    int      `bson:"servings" json:"servings"`
	PrepTime    int      `bson:"prepTime" json:"prepTime"`
	CookingTime int      `bson:"cookingTime" json:"cookingTime"`
	Image       string   `bson:"image,omitempty" json:"image,omitempty"`
	Ingredients []string `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	Tags        []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Notes       string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Clone returns a copy of the slot with a fresh identity. Copy/paste of a
// slot must never share mutable state with the original.
func (s MealSlot) Clone() MealSlot {
	dup := s
	dup.ID = uuid.NewString()
	dup.Ingredients = append([]string(nil), s.Ingredients...)
	dup.Tags = append([]string(nil), s.Tags...)
	return dup
}

// ClampServings forces n into the valid serving range.
func ClampServings(n int) int {
	if n < MinServings {
		return MinServings
	}
	if n > MaxServings {
		return MaxServings
	}
	return n
}

// DayMeals holds the four buckets for one calendar date.
type DayMeals struct {
	Date       time.Time  `bson:"date" json:"date"`
	Breakfast  []MealSlot `bson:"breakfast" json:"breakfast"`
	Lunch      []MealSlot `bson:"lunch" json:"lunch"`
	Dinner     []MealSlot `bson:"dinner" json:"dinner"`
	Snacks     []MealSlot `bson:"snacks" json:"snacks"`
	DailyNotes string     `bson:"dailyNotes,omitempty" json:"dailyNotes,omitempty"`
}

// Bucket returns a pointer to the slice backing the given meal type, or nil
// for an unknown type.
func (d *DayMeals) Bucket(mt MealType) *[]MealSlot {
	switch mt {
	case MealBreakfast:
		return &d.Breakfast
	case MealLunch:
		return &d.Lunch
	case MealDinner:
		return &d.Dinner
	case MealSnacks:
		return &d.Snacks
	}
	return nil
}

// SlotCount is the total number of slots across all four buckets.
func (d *DayMeals) SlotCount() int {
	return len(d.Breakfast) + len(d.Lunch) + len(d.Dinner) + len(d.Snacks)
}

func (d *DayMeals) clone() DayMeals {
	dup := *d
	dup.Breakfast = cloneSlots(d.Breakfast)
	dup.Lunch = cloneSlots(d.Lunch)
	dup.Dinner = cloneSlots(d.Dinner)
	dup.Snacks = cloneSlots(d.Snacks)
	return dup
}

func cloneSlots(slots []MealSlot) []MealSlot {
	if slots == nil {
		return nil
	}
	out := make([]MealSlot, len(slots))
	for i, s := range slots {
		out[i] = s
		out[i].Ingredients = append([]string(nil), s.Ingredients...)
		out[i].Tags = append([]string(nil), s.Tags...)
	}
	return out
}

// MealPlan is one user's week of meals, keyed by its Monday start date.
type MealPlan struct {
	ID                    string         `bson:"id" json:"id"`
	UserID                string         `bson:"userId" json:"userId"`
	WeekStartDate         time.Time      `bson:"weekStartDate" json:"weekStartDate"`
	WeekEndDate           time.Time      `bson:"weekEndDate" json:"weekEndDate"`
	Title                 string         `bson:"title,omitempty" json:"title,omitempty"`
	Days                  []DayMeals     `bson:"days" json:"days"`
	ShoppingListGenerated bool           `bson:"shoppingListGenerated" json:"shoppingListGenerated"`
	ShoppingList          []ShoppingItem `bson:"shoppingList,omitempty" json:"shoppingList,omitempty"`
	Tags                  []string       `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt             time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// dayDate returns the start of the calendar day n days after weekStart.
// Plain AddDate lands on the previous evening when the target day's local
// midnight falls inside a DST gap.
func dayDate(weekStart time.Time, n int) time.Time {
	y, m, d := weekStart.Date()
	noon := time.Date(y, m, d+n, 12, 0, 0, 0, weekStart.Location())
	ny, nm, nd := noon.Date()
	date := time.Date(ny, nm, nd, 0, 0, 0, 0, weekStart.Location())
	for date.Day() != nd {
		date = date.Add(time.Hour)
	}
	return date
}

// NewMealPlan builds an empty plan for the week starting at weekStart.
// weekStart must already be normalized to Monday local midnight.
func NewMealPlan(userID string, weekStart time.Time) *MealPlan {
	now := time.Now()
	plan := &MealPlan{
		ID:            uuid.NewString(),
		UserID:        userID,
		WeekStartDate: weekStart,
		WeekEndDate:   dayDate(weekStart, DaysPerWeek-1),
		Days:          make([]DayMeals, DaysPerWeek),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i := range plan.Days {
		plan.Days[i].Date = dayDate(weekStart, i)
	}
	return plan
}

// Day returns the DayMeals at index i (0 = Monday), or nil when i is out of
// range.
func (p *MealPlan) Day(i int) *DayMeals {
	if i < 0 || i >= len(p.Days) {
		return nil
	}
	return &p.Days[i]
}

// TotalSlots counts every slot across all days and buckets.
func (p *MealPlan) TotalSlots() int {
	total := 0
	for i := range p.Days {
		total += p.Days[i].SlotCount()
	}
	return total
}

// DaysWithMeals counts days holding at least one slot.
func (p *MealPlan) DaysWithMeals() int {
	n := 0
	for i := range p.Days {
		if p.Days[i].SlotCount() > 0 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the plan. The persistence layer snapshots
// plans before writing so later edits never leak into an in-flight save.
func (p *MealPlan) Clone() *MealPlan {
	dup := *p
	dup.Days = make([]DayMeals, len(p.Days))
	for i := range p.Days {
		dup.Days[i] = p.Days[i].clone()
	}
	dup.ShoppingList = append([]ShoppingItem(nil), p.ShoppingList...)
	dup.Tags = append([]string(nil), p.Tags...)
	return &dup
}

// Realign pins days[i].Date to weekStartDate+i. Plans loaded from the
// remote store carry ISO timestamps that may deserialize off local
// midnight; realignment keeps the index/date invariant from drifting.
func (p *MealPlan) Realign(weekStart time.Time) {
	p.WeekStartDate = weekStart
	p.WeekEndDate = dayDate(weekStart, DaysPerWeek-1)
	if len(p.Days) != DaysPerWeek {
		days := make([]DayMeals, DaysPerWeek)
		copy(days, p.Days)
		p.Days = days
	}
	for i := range p.Days {
		p.Days[i].Date = dayDate(weekStart, i)
	}
}
