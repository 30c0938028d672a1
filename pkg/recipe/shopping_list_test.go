package recipe

import (
	"Foodgram-Backend/domain"
	"strings"
	"testing"
)

func TestAggregateShoppingListMergesSameNameAndUnit(t *testing.T) {
	rows := []domain.ShoppingCartRow{
		{Name: "flour", Unit: "g", Amount: 200},
		{Name: "flour", Unit: "g", Amount: 300},
	}

	entries := aggregateShoppingList(rows)
	if len(entries) != 1 {
		t.Fatalf("expected a single merged entry, got %d", len(entries))
	}
	if entries[0].Total != 500 {
		t.Fatalf("expected summed amount 500, got %d", entries[0].Total)
	}
}

func TestAggregateShoppingListKeepsDifferentUnitsApart(t *testing.T) {
	rows := []domain.ShoppingCartRow{
		{Name: "milk", Unit: "ml", Amount: 250},
		{Name: "milk", Unit: "l", Amount: 1},
	}

	entries := aggregateShoppingList(rows)
	if len(entries) != 2 {
		t.Fatalf("expected separate entries per unit, got %d", len(entries))
	}
}

func TestAggregateShoppingListSorted(t *testing.T) {
	rows := []domain.ShoppingCartRow{
		{Name: "sugar", Unit: "g", Amount: 10},
		{Name: "flour", Unit: "kg", Amount: 1},
		{Name: "flour", Unit: "g", Amount: 100},
	}

	entries := aggregateShoppingList(rows)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []shoppingListEntry{
		{Name: "flour", Unit: "g", Total: 100},
		{Name: "flour", Unit: "kg", Total: 1},
		{Name: "sugar", Unit: "g", Total: 10},
	}
	for i, entry := range entries {
		if entry != want[i] {
			t.Fatalf("entry %d: got %+v, want %+v", i, entry, want[i])
		}
	}
}

func TestRenderShoppingList(t *testing.T) {
	entries := []shoppingListEntry{
		{Name: "flour", Unit: "g", Total: 500},
		{Name: "milk", Unit: "ml", Total: 250},
	}

	got := string(renderShoppingList(entries))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if lines[0] != domain.ShoppingListHeader {
		t.Fatalf("expected header %q, got %q", domain.ShoppingListHeader, lines[0])
	}
	if lines[1] != "flour: 500, g" {
		t.Fatalf("unexpected line: %q", lines[1])
	}
	if lines[2] != "milk: 250, ml" {
		t.Fatalf("unexpected line: %q", lines[2])
	}
}

func TestRenderShoppingListEmptyCart(t *testing.T) {
	got := string(renderShoppingList(nil))
	if got != domain.ShoppingListHeader+"\n" {
		t.Fatalf("empty cart should render the header only, got %q", got)
	}
}
