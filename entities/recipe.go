package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid" json:"author_id"`
	Name        string    `gorm:"uniqueIndex;size:200" json:"name"`
	Text        string    `gorm:"type:text" json:"text"`
	CookingTime int       `json:"cooking_time"`
	ImageURL    string    `json:"image_url,omitempty"`

	Author  *User           `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Tags    []Tag           `gorm:"many2many:recipe_tags"`
	Content []RecipeContent `gorm:"foreignKey:RecipeID"`
	Timestamp
}

// RecipeContent rows live and die with their recipe: updates discard the
// whole set and reinsert, so an ingredient appears at most once per recipe.
type RecipeContent struct {
	ID           uint      `gorm:"primary_key" json:"-"`
	RecipeID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uint      `gorm:"uniqueIndex:idx_recipe_ingredient" json:"id"`
	Amount       int       `json:"amount"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}
