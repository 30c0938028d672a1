package recipe

import (
	"Foodgram-Backend/domain"
	"fmt"
	"sort"
	"strings"
)

// shoppingListEntry is one rendered line: the summed amount for a distinct
// (ingredient name, unit) pair across every recipe in the cart.
type shoppingListEntry struct {
	Name  string
	Unit  string
	Total int
}

// aggregateShoppingList groups cart rows by (name, unit) rather than by
// ingredient id, so two catalog rows sharing a name and unit merge into a
// single line. Amounts are summed and the result is ordered by name, then unit.
func aggregateShoppingList(rows []domain.ShoppingCartRow) []shoppingListEntry {
	type key struct {
		name string
		unit string
	}

	totals := map[key]int{}
	for _, row := range rows {
		totals[key{name: row.Name, unit: row.Unit}] += row.Amount
	}

	entries := make([]shoppingListEntry, 0, len(totals))
	for k, total := range totals {
		entries = append(entries, shoppingListEntry{Name: k.name, Unit: k.unit, Total: total})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Unit < entries[j].Unit
	})
	return entries
}

// renderShoppingList builds the downloadable report. An empty cart renders
// the header line only.
func renderShoppingList(entries []shoppingListEntry) []byte {
	var b strings.Builder
	b.WriteString(domain.ShoppingListHeader)
	b.WriteString("\n")
	for _, entry := range entries {
		b.WriteString(fmt.Sprintf("%s: %d, %s\n", entry.Name, entry.Total, entry.Unit))
	}
	return []byte(b.String())
}
