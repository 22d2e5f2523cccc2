// Package catalog holds the fixed menu of purchasable line items. Prices
// are never entered free-form: selecting an entry copies both description
// and unit price onto a line item in one step.
package catalog

import (
	"errors"

	"github.com/elitekitchen/invoicer/internal/invoice"
	"github.com/elitekitchen/invoicer/internal/money"
)

// ErrUnknownEntry is returned when a description does not match the menu.
var ErrUnknownEntry = errors.New("unknown catalog entry")

// Entry is one purchasable item template. The description acts as the
// natural key within the list.
type Entry struct {
	Description string
	UnitPrice   money.Amount
}

var entries = []Entry{
	{Description: "Jollof rice (pck)", UnitPrice: money.FromMajor(2000)},
	{Description: "White rice (pck)", UnitPrice: money.FromMajor(1800)},
	{Description: "Fried rice (pck)", UnitPrice: money.FromMajor(2200)},
	{Description: "Ofada rice (pck)", UnitPrice: money.FromMajor(2500)},
	{Description: "Vegetable (prt)", UnitPrice: money.FromMajor(1000)},
	{Description: "Egusi (prt)", UnitPrice: money.FromMajor(1200)},
	{Description: "Beef (pcs)", UnitPrice: money.FromMajor(800)},
	{Description: "Chicken (pcs)", UnitPrice: money.FromMajor(1000)},
	{Description: "Egg (pcs)", UnitPrice: money.FromMajor(300)},
	{Description: "Fish (pcs)", UnitPrice: money.FromMajor(900)},
}

// Entries returns the menu in its fixed display order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	return out
}

// FindByDescription looks up an entry by its exact description.
func FindByDescription(description string) (Entry, bool) {
	for _, e := range entries {
		if e.Description == description {
			return e, true
		}
	}

	return Entry{}, false
}

// Apply copies the selected entry's description and unit price onto the
// item together, so an item can never carry a description with a price that
// diverges from the menu.
func Apply(item *invoice.LineItem, description string) error {
	entry, ok := FindByDescription(description)
	if !ok {
		return ErrUnknownEntry
	}

	item.Description = entry.Description
	item.UnitPrice = entry.UnitPrice

	return nil
}
