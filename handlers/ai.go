package handlers

import (
	"io"
	"net/http"
	"strings"

	ai "smartplates/services/intelligence"
	"smartplates/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxIngredientImageBytes caps uploads at 8 MiB.
const maxIngredientImageBytes = 8 << 20

// AIHandler exposes ingredient recognition from photos.
type AIHandler struct {
	AIService ai.AIService
}

// RecognizeIngredientsHandler handles POST /ai/ingredients with a multipart
// "image" field (jpeg or png).
func (h *AIHandler) RecognizeIngredientsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	if _, ok := authedUserID(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image not provided", "detail": err.Error()})
		return
	}
	if fileHeader.Size > maxIngredientImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds 8MB limit"})
		return
	}

	format := imageFormat(fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if format == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image format; use jpeg or png"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}

	ingredients, err := h.AIService.RecognizeIngredients(c, data, format)
	if err != nil {
		logger.Error("Ingredient recognition failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Ingredient recognition failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

// imageFormat maps the upload's content type (or extension as a fallback)
// to the subtype the vision model expects.
func imageFormat(contentType, filename string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/png":
		return "png"
	}
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".jpg"), strings.HasSuffix(name, ".jpeg"):
		return "jpeg"
	case strings.HasSuffix(name, ".png"):
		return "png"
	}
	return ""
}
