package recipe

import (
	"Foodgram-Backend/domain"
	"fmt"
	"math"
)

// validateRecipeInput runs the write-time checks that need no catalog
// lookups. It returns the parsed tag ids when the tag list is well formed.
// isNew requires the scalar fields that a create cannot leave out.
func validateRecipeInput(req domain.SaveRecipeRequest, isNew bool) ([]uint, *domain.ValidationError) {
	verr := domain.NewValidationError()

	if isNew {
		if req.Name == nil || *req.Name == "" {
			verr.Add("name", "this field is required")
		}
		if req.Text == nil || *req.Text == "" {
			verr.Add("text", "this field is required")
		}
		if req.CookingTime == nil {
			verr.Add("cooking_time", "this field is required")
		}
	}

	if req.CookingTime != nil && *req.CookingTime < 1 {
		verr.Add("cooking_time", "cooking time must be 1 minute or greater")
	}

	var tagIDs []uint
	if len(req.Tags) == 0 {
		verr.Add("tags", "at least one tag is required")
	} else {
		for _, raw := range req.Tags {
			id, ok := tagIdentifier(raw)
			if !ok {
				verr.Add("tags", fmt.Sprintf(
					"invalid tag identifier: expected an integer, got %s", jsonTypeName(raw)))
				continue
			}
			tagIDs = append(tagIDs, id)
		}
	}

	if len(req.Ingredients) == 0 {
		verr.Add("ingredients", "at least one ingredient is required")
	}

	if verr.HasErrors() {
		return nil, verr
	}
	return tagIDs, nil
}

// validateRecipeContents checks the resolved ingredient rows: every
// ingredient at most once, every amount positive. Messages name the
// offending ingredient.
func validateRecipeContents(rows []domain.RecipeContentRequest, names map[uint]string) *domain.ValidationError {
	verr := domain.NewValidationError()

	seen := map[uint]int{}
	for _, row := range rows {
		seen[row.ID]++
	}
	reported := map[uint]bool{}
	for _, row := range rows {
		if seen[row.ID] > 1 && !reported[row.ID] {
			reported[row.ID] = true
			verr.Add("ingredients", fmt.Sprintf(
				"ingredient %s is repeated, please submit unique ingredients", names[row.ID]))
		}
	}

	for _, row := range rows {
		if row.Amount < 1 {
			verr.Add("amount", fmt.Sprintf(
				"amount for ingredient %s must be 1 or greater", names[row.ID]))
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// tagIdentifier accepts a decoded JSON value as a tag id only when it is a
// whole non-negative number. JSON numbers arrive as float64.
func tagIdentifier(raw any) (uint, bool) {
	switch v := raw.(type) {
	case float64:
		if v < 0 || v != math.Trunc(v) {
			return 0, false
		}
		return uint(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	default:
		return 0, false
	}
}

func jsonTypeName(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, int:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", raw)
	}
}
