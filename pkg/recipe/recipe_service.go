package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/catalog"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.SaveRecipeRequest, userID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error

		AddFavorite(ctx context.Context, recipeID, userID string) (domain.PartialRecipeResponse, error)
		RemoveFavorite(ctx context.Context, recipeID, userID string) error
		AddToShoppingCart(ctx context.Context, recipeID, userID string) (domain.PartialRecipeResponse, error)
		RemoveFromShoppingCart(ctx context.Context, recipeID, userID string) error
		DownloadShoppingList(ctx context.Context, userID string) ([]byte, error)
	}

	// SubscriptionReader resolves which authors the caller follows, for
	// the is_subscribed annotation on recipe author payloads.
	SubscriptionReader interface {
		GetSubscribedAuthorIDs(ctx context.Context, subscriberID string) ([]uuid.UUID, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		subscriptions     SubscriptionReader
		s3                storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, catalogRepository catalog.CatalogRepository, subscriptions SubscriptionReader, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		subscriptions:     subscriptions,
		s3:                s3,
	}
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) ([]domain.RecipeResponse, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, filter, userID)
	if err != nil {
		return nil, 0, err
	}

	rel, err := s.userRelations(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, recipeResponse(r, rel.favorites[r.ID], rel.carts[r.ID], rel.authors[r.AuthorID]))
	}
	return res, count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	rel, err := s.userRelations(ctx, userID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return recipeResponse(recipe, rel.favorites[recipe.ID], rel.carts[recipe.ID], rel.authors[recipe.AuthorID]), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.RecipeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	tags, contents, verr, err := s.validateAndResolve(ctx, req, true)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if verr != nil {
		return domain.RecipeResponse{}, verr
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    userUUID,
		Name:        *req.Name,
		Text:        *req.Text,
		CookingTime: *req.CookingTime,
	}
	if req.Image != nil && *req.Image != "" {
		imageURL, err := s.uploadImage(recipe.ID, *req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = imageURL
	}

	if err := s.recipeRepository.SaveRecipe(ctx, recipe, tags, contents, true); err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.SaveRecipeRequest, userID string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}
	if recipe.AuthorID.String() != userID {
		return domain.RecipeResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	tags, contents, verr, err := s.validateAndResolve(ctx, req, false)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	if verr != nil {
		return domain.RecipeResponse{}, verr
	}

	// scalar fields omitted from the payload keep their prior values
	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.CookingTime != nil {
		recipe.CookingTime = *req.CookingTime
	}
	if req.Image != nil && *req.Image != "" {
		imageURL, err := s.uploadImage(recipe.ID, *req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = imageURL
	}
	recipe.Tags = nil
	recipe.Content = nil

	if err := s.recipeRepository.SaveRecipe(ctx, recipe, tags, contents, false); err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.GetRecipeDetail(ctx, recipe.ID.String(), userID)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID.String() != userID {
		return domain.ErrUnauthorizedRecipeAccess
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) AddFavorite(ctx context.Context, recipeID, userID string) (domain.PartialRecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PartialRecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.PartialRecipeResponse{}, err
	}

	exists, err := s.recipeRepository.IsFavorited(ctx, userID, recipeID)
	if err != nil {
		return domain.PartialRecipeResponse{}, err
	}
	if exists {
		return domain.PartialRecipeResponse{}, domain.ErrAlreadyFavorited
	}

	if err := s.recipeRepository.AddFavorite(ctx, userID, recipeID); err != nil {
		// a concurrent add that won the race surfaces the same way as the
		// pre-check
		if IsDuplicateError(err) {
			return domain.PartialRecipeResponse{}, domain.ErrAlreadyFavorited
		}
		return domain.PartialRecipeResponse{}, err
	}
	return partialRecipeResponse(recipe), nil
}

func (s *recipeService) RemoveFavorite(ctx context.Context, recipeID, userID string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	removed, err := s.recipeRepository.RemoveFavorite(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotFavorited
	}
	return nil
}

func (s *recipeService) AddToShoppingCart(ctx context.Context, recipeID, userID string) (domain.PartialRecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PartialRecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.PartialRecipeResponse{}, err
	}

	exists, err := s.recipeRepository.IsInCart(ctx, userID, recipeID)
	if err != nil {
		return domain.PartialRecipeResponse{}, err
	}
	if exists {
		return domain.PartialRecipeResponse{}, domain.ErrAlreadyInCart
	}

	if err := s.recipeRepository.AddToCart(ctx, userID, recipeID); err != nil {
		if IsDuplicateError(err) {
			return domain.PartialRecipeResponse{}, domain.ErrAlreadyInCart
		}
		return domain.PartialRecipeResponse{}, err
	}
	return partialRecipeResponse(recipe), nil
}

func (s *recipeService) RemoveFromShoppingCart(ctx context.Context, recipeID, userID string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	removed, err := s.recipeRepository.RemoveFromCart(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrNotInCart
	}
	return nil
}

func (s *recipeService) DownloadShoppingList(ctx context.Context, userID string) ([]byte, error) {
	rows, err := s.recipeRepository.GetShoppingCartRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	return renderShoppingList(aggregateShoppingList(rows)), nil
}

// validateAndResolve runs the full write-time rule set and resolves the
// submitted tag and ingredient ids against the catalog. All rules run
// before any write; a dangling reference is an error distinct from a
// validation failure.
func (s *recipeService) validateAndResolve(ctx context.Context, req domain.SaveRecipeRequest, isNew bool) ([]entities.Tag, []entities.RecipeContent, *domain.ValidationError, error) {
	tagIDs, verr := validateRecipeInput(req, isNew)
	if verr != nil {
		return nil, nil, verr, nil
	}

	tags, err := s.catalogRepository.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(tags) != len(uniqueIDs(tagIDs)) {
		return nil, nil, nil, domain.ErrTagNotFound
	}

	ingredientIDs := make([]uint, 0, len(req.Ingredients))
	for _, row := range req.Ingredients {
		ingredientIDs = append(ingredientIDs, row.ID)
	}
	ingredients, err := s.catalogRepository.GetIngredientsByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, nil, nil, err
	}

	names := make(map[uint]string, len(ingredients))
	for _, ingredient := range ingredients {
		names[ingredient.ID] = ingredient.Name
	}
	for _, id := range ingredientIDs {
		if _, ok := names[id]; !ok {
			return nil, nil, nil, domain.ErrIngredientNotFound
		}
	}

	if verr := validateRecipeContents(req.Ingredients, names); verr != nil {
		return nil, nil, verr, nil
	}

	contents := make([]entities.RecipeContent, 0, len(req.Ingredients))
	for _, row := range req.Ingredients {
		contents = append(contents, entities.RecipeContent{
			IngredientID: row.ID,
			Amount:       row.Amount,
		})
	}
	return tags, contents, nil, nil
}

type userRelations struct {
	favorites map[uuid.UUID]bool
	carts     map[uuid.UUID]bool
	authors   map[uuid.UUID]bool
}

func (s *recipeService) userRelations(ctx context.Context, userID string) (userRelations, error) {
	rel := userRelations{
		favorites: map[uuid.UUID]bool{},
		carts:     map[uuid.UUID]bool{},
		authors:   map[uuid.UUID]bool{},
	}
	if userID == "" {
		// anonymous callers see every flag as false
		return rel, nil
	}

	favIDs, err := s.recipeRepository.GetFavoriteRecipeIDs(ctx, userID)
	if err != nil {
		return rel, err
	}
	for _, id := range favIDs {
		rel.favorites[id] = true
	}

	cartIDs, err := s.recipeRepository.GetCartRecipeIDs(ctx, userID)
	if err != nil {
		return rel, err
	}
	for _, id := range cartIDs {
		rel.carts[id] = true
	}

	authorIDs, err := s.subscriptions.GetSubscribedAuthorIDs(ctx, userID)
	if err != nil {
		return rel, err
	}
	for _, id := range authorIDs {
		rel.authors[id] = true
	}
	return rel, nil
}

// uploadImage decodes a base64 data URL from the payload and stores it,
// returning the public link.
func (s *recipeService) uploadImage(recipeID uuid.UUID, image string) (string, error) {
	data, contentType, err := decodeBase64Image(image)
	if err != nil {
		return "", err
	}

	objectKey, err := s.s3.UploadBytes(
		fmt.Sprintf("recipe-%s", recipeID.String()),
		data,
		contentType,
		"recipes",
		storage.AllowImage...,
	)
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

func decodeBase64Image(image string) ([]byte, string, error) {
	contentType := "image/jpeg"
	payload := image

	if strings.HasPrefix(image, "data:") {
		parts := strings.SplitN(image, ",", 2)
		if len(parts) != 2 {
			return nil, "", fmt.Errorf("malformed image data URL")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		contentType = strings.SplitN(meta, ";", 2)[0]
		payload = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 image: %w", err)
	}
	return data, contentType, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := map[uint]bool{}
	res := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			res = append(res, id)
		}
	}
	return res
}

func recipeResponse(recipe *entities.Recipe, isFavorited, isInCart, authorSubscribed bool) domain.RecipeResponse {
	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, domain.TagResponse{
			ID:    tag.ID,
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}

	ingredients := make([]domain.RecipeContentResponse, 0, len(recipe.Content))
	for _, content := range recipe.Content {
		row := domain.RecipeContentResponse{
			ID:     content.IngredientID,
			Amount: content.Amount,
		}
		if content.Ingredient != nil {
			row.Name = content.Ingredient.Name
			if content.Ingredient.MeasureUnit != nil {
				row.MeasurementUnit = content.Ingredient.MeasureUnit.Unit
			}
		}
		ingredients = append(ingredients, row)
	}

	author := domain.UserResponse{}
	if recipe.Author != nil {
		author = domain.UserResponse{
			ID:           recipe.Author.ID.String(),
			Email:        recipe.Author.Email,
			Username:     recipe.Author.Username,
			FirstName:    recipe.Author.FirstName,
			LastName:     recipe.Author.LastName,
			IsSubscribed: authorSubscribed,
		}
	}

	return domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Name:             recipe.Name,
		Image:            recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

func partialRecipeResponse(recipe *entities.Recipe) domain.PartialRecipeResponse {
	return domain.PartialRecipeResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}
