package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is a stored recipe document.
type Recipe struct {
	ID          string    `bson:"id" json:"id"`
	AuthorID    string    `bson:"authorId,omitempty" json:"authorId,omitempty"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Image       string    `bson:"image,omitempty" json:"image,omitempty"`
	Servings    int       `bson:"servings,omitempty" json:"servings,omitempty"`
	PrepTime    int       `bson:"prepTime,omitempty" json:"prepTime,omitempty"`
	CookingTime int       `bson:"cookingTime,omitempty" json:"cookingTime,omitempty"`
	// ReadyInMinutes is the legacy total-time field still present on
	// imported recipe payloads. NewMealSlot falls back to it when
	// CookingTime is absent.
	ReadyInMinutes int       `bson:"readyInMinutes,omitempty" json:"readyInMinutes,omitempty"`
	Ingredients    []string  `bson:"ingredients,omitempty" json:"ingredients,omitempty"`
	Instructions   []string  `bson:"instructions,omitempty" json:"instructions,omitempty"`
	Tags           []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewMealSlot normalizes a recipe payload into the canonical slot shape.
// Recipe sources are inconsistent about optional fields, so all defaulting
// happens here and nowhere else: missing servings become 1, missing times
// become 0, and the legacy readyInMinutes field stands in for a missing
// cooking time.
func NewMealSlot(r Recipe) MealSlot {
	servings := r.Servings
	if servings <= 0 {
		servings = 1
	}
	cooking := r.CookingTime
	if cooking <= 0 && r.ReadyInMinutes > 0 {
		cooking = r.ReadyInMinutes
	}
	if cooking < 0 {
		cooking = 0
	}
	prep := r.PrepTime
	if prep < 0 {
		prep = 0
	}
	slot := MealSlot{
		ID:          uuid.NewString(),
		RecipeID:    r.ID,
		RecipeName:  r.Title,
		Servings:    ClampServings(servings),
		PrepTime:    prep,
		CookingTime: cooking,
		Image:       r.Image,
		Ingredients: append([]string(nil), r.Ingredients...),
		Tags:        append([]string(nil), r.Tags...),
	}
	return slot
}
