package ai

import "context"

// AIService recognizes ingredients from a photo of a dish or a pantry.
type AIService interface {
	// RecognizeIngredients returns ingredient names detected in the image.
	// format is the image subtype ("jpeg", "png").
	RecognizeIngredients(ctx context.Context, imageData []byte, format string) ([]string, error)
}
