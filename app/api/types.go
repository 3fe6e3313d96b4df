package api

import (
	"github.com/lysyi3m/recipe-box/app/database"
	"github.com/lysyi3m/recipe-box/app/recipe"
	"github.com/lysyi3m/recipe-box/app/scaling"
	"github.com/lysyi3m/recipe-box/app/store"
)

// RecipeLoader reads the whole collection; the API re-reads it on every request.
type RecipeLoader interface {
	Load() ([]recipe.Recipe, error)
}

var _ RecipeLoader = (*store.Store)(nil)

type Handler struct {
	recipes RecipeLoader
	scaler  scaling.Scaler
	history database.AttemptRepository
	version string
}

type RecipeList struct {
	Recipes []recipe.Recipe `json:"recipes"`
	Total   int             `json:"total"`
}

type ScaledIngredients struct {
	ID               string   `json:"id"`
	Servings         int      `json:"servings"`
	OriginalServings int      `json:"originalServings"`
	Ingredients      []string `json:"ingredients"`
}
