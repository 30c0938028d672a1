package catalog

import (
	"Foodgram-Backend/domain"
	"testing"
)

func TestRankIngredientsPrefixFirst(t *testing.T) {
	ingredients := []domain.IngredientResponse{
		{ID: 1, Name: "coconut milk"},
		{ID: 2, Name: "milk"},
		{ID: 3, Name: "buttermilk"},
		{ID: 4, Name: "milk powder"},
	}

	rankIngredients(ingredients, "milk")

	want := []string{"milk", "milk powder", "buttermilk", "coconut milk"}
	for i, name := range want {
		if ingredients[i].Name != name {
			t.Fatalf("position %d: got %q, want %q", i, ingredients[i].Name, name)
		}
	}
}

func TestRankIngredientsCaseInsensitive(t *testing.T) {
	ingredients := []domain.IngredientResponse{
		{ID: 1, Name: "sea salt"},
		{ID: 2, Name: "Salt"},
	}

	rankIngredients(ingredients, "sal")

	if ingredients[0].Name != "Salt" {
		t.Fatalf("expected prefix match first, got %q", ingredients[0].Name)
	}
}

func TestRankIngredientsEmptyQuery(t *testing.T) {
	ingredients := []domain.IngredientResponse{
		{ID: 1, Name: "banana"},
		{ID: 2, Name: "apple"},
	}

	rankIngredients(ingredients, "")

	if ingredients[0].Name != "banana" || ingredients[1].Name != "apple" {
		t.Fatal("empty query must not reorder results")
	}
}
