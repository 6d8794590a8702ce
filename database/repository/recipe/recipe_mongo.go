package recipeRepo

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

const defaultListLimit = 50

// MongoRecipeRepo implements RecipeRepository using MongoDB.
type MongoRecipeRepo struct {
	coll *mongo.Collection
}

// NewMongoRecipeRepo creates a new instance of RecipeRepository using MongoDB.
func NewMongoRecipeRepo() RecipeRepository {
	coll := database.MongoClient.Database("smartplates").Collection("recipes")
	repo := &MongoRecipeRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoRecipeRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "authorId", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a recipe by its unique ID.
func (r *MongoRecipeRepo) GetByID(id string) (*models.Recipe, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var recipe models.Recipe
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&recipe); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch recipe with id %s: %w", id, err)
	}
	return &recipe, nil
}

// List retrieves recipes matching the filter, newest first.
func (r *MongoRecipeRepo) List(filter RecipeFilter) ([]models.Recipe, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Query != "" {
		query["$text"] = bson.M{"$search": filter.Query}
	}
	if len(filter.Tags) > 0 {
		query["tags"] = bson.M{"$all": filter.Tags}
	}
	if filter.AuthorID != "" {
		query["authorId"] = filter.AuthorID
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer cursor.Close(ctx)

	var recipes []models.Recipe
	for cursor.Next(ctx) {
		var rec models.Recipe
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode recipe: %w", err)
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// Create inserts a new recipe document.
func (r *MongoRecipeRepo) Create(recipe *models.Recipe) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, recipe)
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}

// Update modifies an existing recipe document.
func (r *MongoRecipeRepo) Update(recipe *models.Recipe) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	recipe.UpdatedAt = time.Now()
	filter := bson.M{"id": recipe.ID}
	update := bson.M{"$set": recipe}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update recipe with id %s: %w", recipe.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("recipe with id %s not found", recipe.ID)
	}
	return nil
}

// Delete removes a recipe document by its ID.
func (r *MongoRecipeRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete recipe with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("recipe with id %s not found", id)
	}
	return nil
}
