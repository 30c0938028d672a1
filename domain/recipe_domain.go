package domain

import (
	"errors"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedFavorite        = "failed to update favorites"
	MessageFailedShoppingCart    = "failed to update shopping cart"
	MessageFailedShoppingList    = "failed to build shopping list"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrIngredientNotFound       = errors.New("ingredient not found")
	ErrTagNotFound              = errors.New("tag not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrAlreadyFavorited         = errors.New("already in favorites")
	ErrNotFavorited             = errors.New("not in favorites")
	ErrAlreadyInCart            = errors.New("already in shopping cart")
	ErrNotInCart                = errors.New("not in shopping cart")
)

// ShoppingListHeader is the fixed first line of the rendered report.
const ShoppingListHeader = "СПИСОК ПОКУПОК:"

const ShoppingListFilename = "shopping_list.txt"

type (
	// RecipeContentRequest is one submitted ingredient row: catalog
	// ingredient id plus the amount used by the recipe.
	RecipeContentRequest struct {
		ID     uint `json:"id" validate:"required"`
		Amount int  `json:"amount"`
	}

	// SaveRecipeRequest covers both create and update. Scalar fields are
	// pointers so a partial update can leave them untouched; tags and
	// ingredients are always replaced wholesale with the submitted sets.
	// Tags stays untyped so non-integer identifiers can be rejected with
	// the received JSON type in the message.
	SaveRecipeRequest struct {
		Name        *string                `json:"name"`
		Text        *string                `json:"text"`
		CookingTime *int                   `json:"cooking_time"`
		Image       *string                `json:"image"`
		Tags        []any                  `json:"tags"`
		Ingredients []RecipeContentRequest `json:"ingredients"`
	}

	RecipeContentResponse struct {
		ID              uint   `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	TagResponse struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}

	RecipeResponse struct {
		ID               string                  `json:"id"`
		Tags             []TagResponse           `json:"tags"`
		Author           UserResponse            `json:"author"`
		Ingredients      []RecipeContentResponse `json:"ingredients"`
		IsFavorited      bool                    `json:"is_favorited"`
		IsInShoppingCart bool                    `json:"is_in_shopping_cart"`
		Name             string                  `json:"name"`
		Image            string                  `json:"image"`
		Text             string                  `json:"text"`
		CookingTime      int                     `json:"cooking_time"`
	}

	PartialRecipeResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	// RecipeFilter carries the optional list predicates; all supplied
	// predicates are ANDed. Tags uses ANY-of-slugs semantics.
	RecipeFilter struct {
		IsFavorited      *bool
		IsInShoppingCart *bool
		Author           string
		Tags             []string
		Page             int
		Limit            int
	}

	// ShoppingCartRow is one cart content row before aggregation:
	// the ingredient name, its unit and the amount from a single recipe.
	ShoppingCartRow struct {
		Name   string
		Unit   string
		Amount int
	}
)
