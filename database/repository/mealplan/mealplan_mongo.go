package mealplanRepo

import (
	"context"
	"fmt"
	"time"

	"smartplates/database"
	"smartplates/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMealPlanRepo implements MealPlanRepository using MongoDB.
type MongoMealPlanRepo struct {
	coll *mongo.Collection
}

// NewMongoMealPlanRepo creates a new instance of MealPlanRepository using MongoDB.
func NewMongoMealPlanRepo() MealPlanRepository {
	coll := database.MongoClient.Database("smartplates").Collection("mealplans")
	repo := &MongoMealPlanRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries. The
// compound (userId, weekStartDate) index is unique: at most one plan per
// user per week.
func (r *MongoMealPlanRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "weekStartDate", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a plan by its unique ID.
func (r *MongoMealPlanRepo) GetByID(id string) (*models.MealPlan, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var plan models.MealPlan
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&plan); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch meal plan with id %s: %w", id, err)
	}
	return &plan, nil
}

// ListByUserBetween retrieves all plans for a user whose week start falls
// inside [from, to], ordered by week start.
func (r *MongoMealPlanRepo) ListByUserBetween(userID string, from, to time.Time) ([]models.MealPlan, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{
		"userId":        userID,
		"weekStartDate": bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "weekStartDate", Value: 1}})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var plans []models.MealPlan
	for cursor.Next(ctx) {
		var p models.MealPlan
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode meal plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// Upsert writes the plan document, inserting it when missing. The caller's
// context bounds the write so a shutdown can cut off in-flight saves.
func (r *MongoMealPlanRepo) Upsert(ctx context.Context, plan *models.MealPlan) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": plan.ID}
	update := bson.M{"$set": plan}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert meal plan with id %s: %w", plan.ID, err)
	}
	return nil
}

// Delete removes a plan document by its ID.
func (r *MongoMealPlanRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete meal plan with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("meal plan with id %s not found", id)
	}
	return nil
}
