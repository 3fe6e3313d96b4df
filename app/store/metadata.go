package store

import (
	"errors"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

var ErrNoChanges = errors.New("no fields to update")

// MetadataUpdate holds the optional fields of an update; nil fields are left as they are.
type MetadataUpdate struct {
	Description *string
	Image       *string
	PrepTime    *string
	CookTime    *string
	Servings    *string
	SourceURL   *string
}

func (u MetadataUpdate) Empty() bool {
	return u.Description == nil && u.Image == nil && u.PrepTime == nil &&
		u.CookTime == nil && u.Servings == nil && u.SourceURL == nil
}

// UpdateMetadata applies the non-nil fields of u to the recipe with the given id.
func (s *Store) UpdateMetadata(id string, u MetadataUpdate) (recipe.Recipe, error) {
	if u.Empty() {
		return recipe.Recipe{}, ErrNoChanges
	}

	return s.modify(id, func(r *recipe.Recipe) {
		set(&r.Description, u.Description)
		set(&r.Image, u.Image)
		set(&r.PrepTime, u.PrepTime)
		set(&r.CookTime, u.CookTime)
		set(&r.Servings, u.Servings)
		set(&r.SourceURL, u.SourceURL)
	})
}

func set(field *string, value *string) {
	if value != nil {
		*field = *value
	}
}
