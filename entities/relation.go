package entities

import (
	"time"

	"github.com/google/uuid"
)

// Favorite and ShoppingCart are two-state membership relations over
// (user, recipe). The composite unique indexes make concurrent adds safe:
// a duplicate insert fails at the store instead of racing a pre-check.

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

type ShoppingCart struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
