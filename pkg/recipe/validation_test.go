package recipe

import (
	"Foodgram-Backend/domain"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func validSaveRequest() domain.SaveRecipeRequest {
	return domain.SaveRecipeRequest{
		Name:        strPtr("Borscht"),
		Text:        strPtr("Cook for an hour."),
		CookingTime: intPtr(60),
		Tags:        []any{float64(1), float64(2)},
		Ingredients: []domain.RecipeContentRequest{
			{ID: 1, Amount: 3},
		},
	}
}

func TestValidateRecipeInputValid(t *testing.T) {
	tagIDs, verr := validateRecipeInput(validSaveRequest(), true)
	if verr != nil {
		t.Fatalf("expected no validation error, got %v", verr)
	}
	if len(tagIDs) != 2 || tagIDs[0] != 1 || tagIDs[1] != 2 {
		t.Fatalf("unexpected tag ids: %v", tagIDs)
	}
}

func TestValidateRecipeInputMissingRequiredOnCreate(t *testing.T) {
	req := validSaveRequest()
	req.Name = nil
	req.Text = strPtr("")
	req.CookingTime = nil

	_, verr := validateRecipeInput(req, true)
	if verr == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"name", "text", "cooking_time"} {
		if len(verr.Fields[field]) == 0 {
			t.Fatalf("expected error on %q, got %v", field, verr.Fields)
		}
	}
}

func TestValidateRecipeInputOptionalOnUpdate(t *testing.T) {
	req := validSaveRequest()
	req.Name = nil
	req.Text = nil
	req.CookingTime = nil

	if _, verr := validateRecipeInput(req, false); verr != nil {
		t.Fatalf("expected partial update to pass, got %v", verr)
	}
}

func TestValidateRecipeInputCookingTime(t *testing.T) {
	tests := []struct {
		name        string
		cookingTime int
		wantErr     bool
	}{
		{"zero rejected", 0, true},
		{"negative rejected", -5, true},
		{"one accepted", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSaveRequest()
			req.CookingTime = intPtr(tt.cookingTime)
			_, verr := validateRecipeInput(req, true)
			if tt.wantErr && (verr == nil || len(verr.Fields["cooking_time"]) == 0) {
				t.Fatalf("expected cooking_time error, got %v", verr)
			}
			if !tt.wantErr && verr != nil {
				t.Fatalf("expected no error, got %v", verr)
			}
		})
	}
}

func TestValidateRecipeInputEmptyTagsAndIngredients(t *testing.T) {
	req := validSaveRequest()
	req.Tags = nil
	req.Ingredients = nil

	_, verr := validateRecipeInput(req, true)
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if len(verr.Fields["tags"]) == 0 {
		t.Fatalf("expected error on tags, got %v", verr.Fields)
	}
	if len(verr.Fields["ingredients"]) == 0 {
		t.Fatalf("expected error on ingredients, got %v", verr.Fields)
	}
}

func TestValidateRecipeInputNonIntegerTag(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantType string
	}{
		{"string tag", "breakfast", "string"},
		{"boolean tag", true, "boolean"},
		{"fractional tag", 1.5, "number"},
		{"null tag", nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSaveRequest()
			req.Tags = []any{tt.value}

			_, verr := validateRecipeInput(req, true)
			if verr == nil || len(verr.Fields["tags"]) == 0 {
				t.Fatalf("expected tags error, got %v", verr)
			}
			if !strings.Contains(verr.Fields["tags"][0], tt.wantType) {
				t.Fatalf("message %q does not name JSON type %q", verr.Fields["tags"][0], tt.wantType)
			}
		})
	}
}

func TestValidateRecipeContentsDuplicateIngredient(t *testing.T) {
	rows := []domain.RecipeContentRequest{
		{ID: 1, Amount: 2},
		{ID: 1, Amount: 3},
	}
	names := map[uint]string{1: "flour"}

	verr := validateRecipeContents(rows, names)
	if verr == nil || len(verr.Fields["ingredients"]) == 0 {
		t.Fatalf("expected ingredients error, got %v", verr)
	}
	if got := verr.Fields["ingredients"]; len(got) != 1 {
		t.Fatalf("duplicate should be reported once, got %v", got)
	}
	if !strings.Contains(verr.Fields["ingredients"][0], "flour") {
		t.Fatalf("message %q does not name the ingredient", verr.Fields["ingredients"][0])
	}
}

func TestValidateRecipeContentsAmountBelowOne(t *testing.T) {
	rows := []domain.RecipeContentRequest{
		{ID: 1, Amount: 0},
		{ID: 2, Amount: 5},
	}
	names := map[uint]string{1: "sugar", 2: "milk"}

	verr := validateRecipeContents(rows, names)
	if verr == nil || len(verr.Fields["amount"]) != 1 {
		t.Fatalf("expected one amount error, got %v", verr)
	}
	if !strings.Contains(verr.Fields["amount"][0], "sugar") {
		t.Fatalf("message %q does not name the ingredient", verr.Fields["amount"][0])
	}
}

func TestValidateRecipeContentsValid(t *testing.T) {
	rows := []domain.RecipeContentRequest{
		{ID: 1, Amount: 1},
		{ID: 2, Amount: 100},
	}
	names := map[uint]string{1: "sugar", 2: "milk"}

	if verr := validateRecipeContents(rows, names); verr != nil {
		t.Fatalf("expected no error, got %v", verr)
	}
}
