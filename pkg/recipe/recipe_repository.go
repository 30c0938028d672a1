package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		SaveRecipe(ctx context.Context, recipe *entities.Recipe, tags []entities.Tag, contents []entities.RecipeContent, isNew bool) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) ([]*entities.Recipe, int64, error)

		GetFavoriteRecipeIDs(ctx context.Context, userID string) ([]uuid.UUID, error)
		GetCartRecipeIDs(ctx context.Context, userID string) ([]uuid.UUID, error)

		AddFavorite(ctx context.Context, userID, recipeID string) error
		RemoveFavorite(ctx context.Context, userID, recipeID string) (bool, error)
		IsFavorited(ctx context.Context, userID, recipeID string) (bool, error)

		AddToCart(ctx context.Context, userID, recipeID string) error
		RemoveFromCart(ctx context.Context, userID, recipeID string) (bool, error)
		IsInCart(ctx context.Context, userID, recipeID string) (bool, error)

		GetShoppingCartRows(ctx context.Context, userID string) ([]domain.ShoppingCartRow, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// SaveRecipe persists the whole aggregate in one transaction: the recipe
// row, the replaced tag set and the replaced content rows. A failure at any
// step rolls the recipe back to its prior state.
func (r *recipeRepository) SaveRecipe(ctx context.Context, recipe *entities.Recipe, tags []entities.Tag, contents []entities.RecipeContent, isNew bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isNew {
			if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&entities.RecipeContent{}).Error; err != nil {
			return err
		}
		for i := range contents {
			contents[i].RecipeID = recipe.ID
		}
		if len(contents) > 0 {
			if err := tx.Create(&contents).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Content.Ingredient.MeasureUnit").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if filter.Author != "" {
		query = query.Where("recipes.author_id = ?", filter.Author)
	}
	if len(filter.Tags) > 0 {
		// a recipe carrying several requested tags joins more than once,
		// hence the DISTINCT below
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.Tags)
	}
	// anonymous callers hold no relations: is_favorited=true matches
	// nothing and is_favorited=false excludes nothing, without ever
	// comparing the uuid column against an empty string
	if filter.IsFavorited != nil {
		if userID == "" {
			if *filter.IsFavorited {
				query = query.Where("1 = 0")
			}
		} else {
			sub := r.db.Model(&entities.Favorite{}).
				Select("recipe_id").
				Where("user_id = ?", userID)
			if *filter.IsFavorited {
				query = query.Where("recipes.id IN (?)", sub)
			} else {
				query = query.Where("recipes.id NOT IN (?)", sub)
			}
		}
	}
	if filter.IsInShoppingCart != nil {
		if userID == "" {
			if *filter.IsInShoppingCart {
				query = query.Where("1 = 0")
			}
		} else {
			sub := r.db.Model(&entities.ShoppingCart{}).
				Select("recipe_id").
				Where("user_id = ?", userID)
			if *filter.IsInShoppingCart {
				query = query.Where("recipes.id IN (?)", sub)
			} else {
				query = query.Where("recipes.id NOT IN (?)", sub)
			}
		}
	}

	// the count runs on its own session so its DISTINCT-on-id select
	// cannot leak into the find below
	if err := query.Session(&gorm.Session{}).
		Distinct("recipes.id").
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Distinct().
		Preload("Author").
		Preload("Tags").
		Preload("Content.Ingredient.MeasureUnit").
		Offset(offset).
		Limit(filter.Limit).
		Order("recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetFavoriteRecipeIDs(ctx context.Context, userID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *recipeRepository) GetCartRecipeIDs(ctx context.Context, userID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *recipeRepository) AddFavorite(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return err
	}

	favorite := entities.Favorite{
		ID:        uuid.New(),
		UserID:    userUUID,
		RecipeID:  recipeUUID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&favorite).Error
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *recipeRepository) IsFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) AddToCart(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}
	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return err
	}

	cart := entities.ShoppingCart{
		ID:        uuid.New(),
		UserID:    userUUID,
		RecipeID:  recipeUUID,
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&cart).Error
}

func (r *recipeRepository) RemoveFromCart(ctx context.Context, userID, recipeID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.ShoppingCart{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *recipeRepository) IsInCart(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetShoppingCartRows returns one row per content entry of every recipe in
// the user's cart; summation happens in the service.
func (r *recipeRepository) GetShoppingCartRows(ctx context.Context, userID string) ([]domain.ShoppingCartRow, error) {
	var rows []domain.ShoppingCartRow
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeContent{}).
		Select("ingredients.name AS name, measure_units.unit AS unit, recipe_contents.amount AS amount").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_contents.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_contents.ingredient_id").
		Joins("JOIN measure_units ON measure_units.id = ingredients.measure_unit_id").
		Where("shopping_carts.user_id = ?", userID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// IsDuplicateError reports whether err is the store rejecting an insert on
// a unique constraint, which is how a toggle race past the pre-check shows
// up.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
