package catalog

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
)

type (
	CatalogService interface {
		GetTags(ctx context.Context) ([]domain.TagResponse, error)
		GetTagByID(ctx context.Context, id uint) (domain.TagResponse, error)
		SearchIngredients(ctx context.Context, query string) ([]domain.IngredientResponse, error)
		GetIngredientByID(ctx context.Context, id uint) (domain.IngredientResponse, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
	}
)

func NewCatalogService(catalogRepository CatalogRepository) CatalogService {
	return &catalogService{catalogRepository: catalogRepository}
}

func (s *catalogService) GetTags(ctx context.Context) ([]domain.TagResponse, error) {
	tags, err := s.catalogRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TagResponse, 0, len(tags))
	for _, tag := range tags {
		res = append(res, tagResponse(tag))
	}
	return res, nil
}

func (s *catalogService) GetTagByID(ctx context.Context, id uint) (domain.TagResponse, error) {
	tag, err := s.catalogRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, domain.ErrTagNotFound
		}
		return domain.TagResponse{}, err
	}
	return tagResponse(*tag), nil
}

func (s *catalogService) SearchIngredients(ctx context.Context, query string) ([]domain.IngredientResponse, error) {
	ingredients, err := s.catalogRepository.SearchIngredients(ctx, query)
	if err != nil {
		return nil, err
	}

	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		res = append(res, ingredientResponse(ingredient))
	}

	rankIngredients(res, query)
	return res, nil
}

func (s *catalogService) GetIngredientByID(ctx context.Context, id uint) (domain.IngredientResponse, error) {
	ingredient, err := s.catalogRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return ingredientResponse(*ingredient), nil
}

// rankIngredients orders search results so names starting with the query
// come before names merely containing it, ties broken alphabetically.
// With an empty query the plain alphabetical order stands.
func rankIngredients(ingredients []domain.IngredientResponse, query string) {
	if query == "" {
		return
	}
	q := strings.ToLower(query)

	rank := func(name string) int {
		if strings.HasPrefix(strings.ToLower(name), q) {
			return 0
		}
		return 1
	}

	sort.SliceStable(ingredients, func(i, j int) bool {
		ri, rj := rank(ingredients[i].Name), rank(ingredients[j].Name)
		if ri != rj {
			return ri < rj
		}
		return ingredients[i].Name < ingredients[j].Name
	})
}

func tagResponse(tag entities.Tag) domain.TagResponse {
	return domain.TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func ingredientResponse(ingredient entities.Ingredient) domain.IngredientResponse {
	unit := ""
	if ingredient.MeasureUnit != nil {
		unit = ingredient.MeasureUnit.Unit
	}
	return domain.IngredientResponse{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: unit,
	}
}
