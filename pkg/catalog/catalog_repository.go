package catalog

import (
	"Foodgram-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	CatalogRepository interface {
		GetTags(ctx context.Context) ([]entities.Tag, error)
		GetTagByID(ctx context.Context, id uint) (*entities.Tag, error)
		GetTagsByIDs(ctx context.Context, ids []uint) ([]entities.Tag, error)
		SearchIngredients(ctx context.Context, name string) ([]entities.Ingredient, error)
		GetIngredientByID(ctx context.Context, id uint) (*entities.Ingredient, error)
		GetIngredientsByIDs(ctx context.Context, ids []uint) ([]entities.Ingredient, error)
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetTags(ctx context.Context) ([]entities.Tag, error) {
	var tags []entities.Tag
	if err := r.db.WithContext(ctx).Order("id asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *catalogRepository) GetTagByID(ctx context.Context, id uint) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *catalogRepository) GetTagsByIDs(ctx context.Context, ids []uint) ([]entities.Tag, error) {
	var tags []entities.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *catalogRepository) SearchIngredients(ctx context.Context, name string) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient

	query := r.db.WithContext(ctx).Preload("MeasureUnit")
	if name != "" {
		query = query.Where("name ILIKE ?", "%"+name+"%")
	}

	if err := query.Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *catalogRepository) GetIngredientsByIDs(ctx context.Context, ids []uint) ([]entities.Ingredient, error) {
	var ingredients []entities.Ingredient
	if err := r.db.WithContext(ctx).
		Preload("MeasureUnit").
		Where("id IN ?", ids).
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *catalogRepository) GetIngredientByID(ctx context.Context, id uint) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).
		Preload("MeasureUnit").
		Where("id = ?", id).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}
