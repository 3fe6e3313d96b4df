package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/recipe-box/app/catalog"
	"github.com/lysyi3m/recipe-box/app/database"
	"github.com/lysyi3m/recipe-box/app/scaling"
)

// NewHandler builds the API handlers. history may be nil when the ingest log is disabled.
func NewHandler(recipes RecipeLoader, scaler scaling.Scaler, history database.AttemptRepository, version string) *Handler {
	return &Handler{
		recipes: recipes,
		scaler:  scaler,
		history: history,
		version: version,
	}
}

func (h *Handler) ListRecipes(c *gin.Context) {
	sortKey, err := catalog.ParseSort(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipes, err := h.recipes.Load()
	if err != nil {
		slog.Error("Store error", "operation", "list_recipes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read recipes"})
		return
	}

	result := catalog.Apply(recipes, catalog.Query{
		Search: c.Query("q"),
		Tag:    c.Query("tag"),
		Sort:   sortKey,
	})

	c.JSON(http.StatusOK, RecipeList{Recipes: result, Total: len(result)})
}

func (h *Handler) GetRecipe(c *gin.Context) {
	id := c.Param("id")

	recipes, err := h.recipes.Load()
	if err != nil {
		slog.Error("Store error", "operation", "get_recipe", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read recipes"})
		return
	}

	r, err := catalog.Find(recipes, id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *Handler) ScaleRecipe(c *gin.Context) {
	id := c.Param("id")

	recipes, err := h.recipes.Load()
	if err != nil {
		slog.Error("Store error", "operation", "scale_recipe", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read recipes"})
		return
	}

	r, err := catalog.Find(recipes, id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	calc := scaling.NewCalculator(r.Ingredients, r.Servings, h.scaler)
	ingredients, err := calc.Scale(c.Query("servings"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ScaledIngredients{
		ID:               r.ID,
		Servings:         calc.Input(),
		OriginalServings: calc.OriginalServings(),
		Ingredients:      ingredients,
	})
}

func (h *Handler) ListTags(c *gin.Context) {
	recipes, err := h.recipes.Load()
	if err != nil {
		slog.Error("Store error", "operation", "list_tags", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": catalog.Tags(recipes)})
}

func (h *Handler) ListHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingest history is disabled"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	attempts, err := h.history.GetRecentAttempts(limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items := make([]gin.H, 0, len(attempts))
	for _, a := range attempts {
		items = append(items, gin.H{
			"id":        a.ID,
			"url":       a.URL,
			"recipeId":  a.RecipeID,
			"strategy":  a.Strategy,
			"status":    a.Status,
			"error":     a.Error,
			"source":    a.Source,
			"createdAt": a.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"attempts": items, "total": len(items)})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
	}

	if recipes, err := h.recipes.Load(); err == nil {
		health["recipes"] = len(recipes)
	} else {
		health["store_error"] = err.Error()
	}

	if h.history != nil {
		if stats, err := h.history.GetAttemptStats(); err == nil {
			health["ingest_attempts"] = stats
		}
	}

	c.JSON(http.StatusOK, health)
}
