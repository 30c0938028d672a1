package recipe

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Tag{},
		&entities.MeasureUnit{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.RecipeContent{},
		&entities.Favorite{},
		&entities.ShoppingCart{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedAuthor(t *testing.T, db *gorm.DB) *entities.User {
	t.Helper()
	author := &entities.User{
		ID:       uuid.New(),
		Email:    "ann@example.com",
		Username: "ann",
	}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("create author: %v", err)
	}
	return author
}

func seedStoredRecipe(t *testing.T, db *gorm.DB, authorID uuid.UUID) *entities.Recipe {
	t.Helper()
	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	return recipe
}

func TestGetRecipesReturnsFullRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	author := seedAuthor(t, db)
	seedStoredRecipe(t, db, author.ID)

	recipes, count, err := repo.GetRecipes(context.Background(), domain.RecipeFilter{Page: 1, Limit: 10}, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if count != 1 || len(recipes) != 1 {
		t.Fatalf("expected one recipe, got count=%d len=%d", count, len(recipes))
	}

	got := recipes[0]
	if got.Name != "Pancakes" || got.Text != "Mix and fry." || got.CookingTime != 20 {
		t.Fatalf("scalar fields lost in listing: %+v", got)
	}
	if got.AuthorID != author.ID {
		t.Fatalf("author id lost in listing: got %s", got.AuthorID)
	}
}

func TestGetRecipesAnonymousRelationFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	author := seedAuthor(t, db)
	seedStoredRecipe(t, db, author.ID)

	boolPtr := func(b bool) *bool { return &b }
	tests := []struct {
		name      string
		filter    domain.RecipeFilter
		wantCount int64
	}{
		{"favorited true matches nothing", domain.RecipeFilter{IsFavorited: boolPtr(true), Page: 1, Limit: 10}, 0},
		{"favorited false excludes nothing", domain.RecipeFilter{IsFavorited: boolPtr(false), Page: 1, Limit: 10}, 1},
		{"in cart true matches nothing", domain.RecipeFilter{IsInShoppingCart: boolPtr(true), Page: 1, Limit: 10}, 0},
		{"in cart false excludes nothing", domain.RecipeFilter{IsInShoppingCart: boolPtr(false), Page: 1, Limit: 10}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, count, err := repo.GetRecipes(context.Background(), tt.filter, "")
			if err != nil {
				t.Fatalf("anonymous list failed: %v", err)
			}
			if count != tt.wantCount || int64(len(recipes)) != tt.wantCount {
				t.Fatalf("expected %d recipes, got count=%d len=%d", tt.wantCount, count, len(recipes))
			}
		})
	}
}

func TestGetRecipesFavoritedFilterForUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	author := seedAuthor(t, db)
	favored := seedStoredRecipe(t, db, author.ID)
	other := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    author.ID,
		Name:        "Omelette",
		Text:        "Whisk and fry.",
		CookingTime: 10,
	}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	userID := uuid.New().String()
	if err := repo.AddFavorite(context.Background(), userID, favored.ID.String()); err != nil {
		t.Fatalf("add favorite: %v", err)
	}

	isFavorited := true
	recipes, count, err := repo.GetRecipes(context.Background(),
		domain.RecipeFilter{IsFavorited: &isFavorited, Page: 1, Limit: 10}, userID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if count != 1 || len(recipes) != 1 {
		t.Fatalf("expected only the favorited recipe, got count=%d len=%d", count, len(recipes))
	}
	if recipes[0].ID != favored.ID {
		t.Fatalf("wrong recipe returned: %s", recipes[0].ID)
	}
}

func TestSaveRecipeReplacesContentRows(t *testing.T) {
	db := openTestDB(t)
	repo := NewRecipeRepository(db)
	author := seedAuthor(t, db)

	unit := entities.MeasureUnit{Unit: "g"}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("create unit: %v", err)
	}
	flour := entities.Ingredient{Name: "flour", MeasureUnitID: unit.ID}
	sugar := entities.Ingredient{Name: "sugar", MeasureUnitID: unit.ID}
	if err := db.Create(&flour).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	if err := db.Create(&sugar).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    author.ID,
		Name:        "Cake",
		Text:        "Bake.",
		CookingTime: 40,
	}
	err := repo.SaveRecipe(context.Background(), recipe, nil, []entities.RecipeContent{
		{IngredientID: flour.ID, Amount: 2},
		{IngredientID: sugar.ID, Amount: 1},
	}, true)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// update to a strict subset: sugar must disappear entirely
	recipe.Tags = nil
	recipe.Content = nil
	err = repo.SaveRecipe(context.Background(), recipe, nil, []entities.RecipeContent{
		{IngredientID: flour.ID, Amount: 5},
	}, false)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := repo.GetRecipeByID(context.Background(), recipe.ID.String())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(got.Content) != 1 {
		t.Fatalf("expected one content row after update, got %d", len(got.Content))
	}
	if got.Content[0].IngredientID != flour.ID || got.Content[0].Amount != 5 {
		t.Fatalf("unexpected content row: %+v", got.Content[0])
	}

	var rows int64
	if err := db.Model(&entities.RecipeContent{}).
		Where("recipe_id = ?", recipe.ID).
		Count(&rows).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("omitted ingredient rows survived the update: %d rows", rows)
	}
}
