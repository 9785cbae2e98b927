package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sweeterrors "github.com/abgdnv/sweetshop/internal/sweet/errors"
	"github.com/abgdnv/sweetshop/internal/sweet/service"
)

var sortChoices = map[int]struct {
	field service.SortField
	label string
}{
	1: {field: service.SortByName, label: "Name"},
	2: {field: service.SortByPrice, label: "Price"},
	3: {field: service.SortByQuantity, label: "Quantity"},
	4: {field: service.SortByCategory, label: "Category"},
}

func (s *Shell) viewAll(ctx context.Context) error {
	sweets := s.service.FindAll(ctx)

	fmt.Fprintln(s.out, "📋 All Sweets in Inventory:")
	fmt.Fprintln(s.out, rule(80))
	if len(sweets) == 0 {
		fmt.Fprintln(s.out, "No sweets available in inventory.")
		return nil
	}
	s.printTable(sweets)
	fmt.Fprintf(s.out, "Total items: %d\n", len(sweets))
	return nil
}

func (s *Shell) addSweet(ctx context.Context) error {
	s.printTitle("➕ Add New Sweet")

	name, err := s.prompt(ctx, "Enter sweet name: ")
	if err != nil {
		return err
	}
	category, err := s.prompt(ctx, "Enter category: ")
	if err != nil {
		return err
	}
	price, err := s.promptFloat(ctx, fmt.Sprintf("Enter price (%s): ", s.opts.Currency))
	if err != nil {
		return err
	}
	quantity, err := s.promptInt(ctx, "Enter quantity: ")
	if err != nil {
		return err
	}

	created, err := s.service.Create(ctx, service.SweetCreateDto{Name: name, Category: category, Price: price, Quantity: quantity})
	if err != nil {
		s.fail(ctx, "add", err)
		return nil
	}
	s.logger.InfoContext(ctx, "sweet added", slog.Int("id", created.ID), slog.String("name", created.Name))
	fmt.Fprintln(s.out, "\n✅ Sweet added successfully!")
	fmt.Fprintln(s.out, created)
	return nil
}

func (s *Shell) deleteSweet(ctx context.Context) error {
	s.printTitle("🗑️  Delete Sweet")

	sweet, err := s.promptExisting(ctx, "Enter sweet ID to delete: ")
	if err != nil || sweet == nil {
		return err
	}
	fmt.Fprintf(s.out, "Sweet to delete: %s\n", sweet.Name)
	confirm, err := s.prompt(ctx, "Are you sure? (yes/no): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "yes") {
		fmt.Fprintln(s.out, "Deletion cancelled.")
		return nil
	}

	if !s.service.DeleteByID(ctx, sweet.ID) {
		s.logger.WarnContext(ctx, "sweet vanished before delete", slog.Int("id", sweet.ID))
		fmt.Fprintln(s.out, "❌ Failed to delete sweet.")
		return nil
	}
	s.logger.InfoContext(ctx, "sweet deleted", slog.Int("id", sweet.ID))
	fmt.Fprintln(s.out, "✅ Sweet deleted successfully!")
	return nil
}

func (s *Shell) searchSweets(ctx context.Context) error {
	s.printTitle("🔍 Search Sweets")
	fmt.Fprintln(s.out, "1. Search by Name")
	fmt.Fprintln(s.out, "2. Search by Category")
	fmt.Fprintln(s.out, "3. Search by Price Range")
	fmt.Fprintln(s.out, "4. Combined Search")

	choice, err := s.promptInt(ctx, "Enter choice: ")
	if err != nil {
		return err
	}

	var results []service.SweetDto
	switch choice {
	case 1:
		term, err := s.prompt(ctx, "Enter name to search: ")
		if err != nil {
			return err
		}
		results = s.service.SearchByName(ctx, term)
	case 2:
		term, err := s.prompt(ctx, "Enter category: ")
		if err != nil {
			return err
		}
		results = s.service.SearchByCategory(ctx, term)
	case 3:
		minPrice, err := s.promptFloat(ctx, "Enter minimum price: ")
		if err != nil {
			return err
		}
		maxPrice, err := s.promptFloat(ctx, "Enter maximum price: ")
		if err != nil {
			return err
		}
		if results, err = s.service.SearchByPriceRange(ctx, minPrice, maxPrice); err != nil {
			s.fail(ctx, "search", err)
			return nil
		}
	case 4:
		filter, err := s.promptFilter(ctx)
		if err != nil {
			return err
		}
		if results, err = s.service.Filter(ctx, filter); err != nil {
			s.fail(ctx, "search", err)
			return nil
		}
	default:
		s.invalidSubChoice(ctx, choice)
		return nil
	}

	s.logger.InfoContext(ctx, "search completed", slog.Int("mode", choice), slog.Int("found", len(results)))
	s.printResults(results)
	return nil
}

func (s *Shell) promptFilter(ctx context.Context) (service.Filter, error) {
	var filter service.Filter
	var err error
	if filter.Name, err = s.prompt(ctx, "Name contains (blank for any): "); err != nil {
		return filter, err
	}
	if filter.Category, err = s.prompt(ctx, "Category (blank for any): "); err != nil {
		return filter, err
	}
	if filter.MinPrice, err = s.promptOptionalFloat(ctx, "Minimum price (blank for none): "); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = s.promptOptionalFloat(ctx, "Maximum price (blank for none): "); err != nil {
		return filter, err
	}
	return filter, nil
}

func (s *Shell) purchaseSweet(ctx context.Context) error {
	s.printTitle("🛒 Purchase Sweet")

	sweet, err := s.promptExisting(ctx, "Enter sweet ID: ")
	if err != nil || sweet == nil {
		return err
	}
	fmt.Fprintf(s.out, "Sweet: %s\n", sweet.Name)
	fmt.Fprintf(s.out, "Available quantity: %d\n", sweet.Quantity)

	amount, err := s.promptInt(ctx, "Enter quantity to purchase: ")
	if err != nil {
		return err
	}
	updated, err := s.service.Purchase(ctx, sweet.ID, amount)
	if err != nil {
		if errors.Is(err, sweeterrors.ErrInsufficientStock) {
			s.logger.WarnContext(ctx, "purchase rejected", slog.Int("id", sweet.ID), slog.Any("error", err))
			fmt.Fprintf(s.out, "❌ %v\n", err)
			return nil
		}
		s.fail(ctx, "purchase", err)
		return nil
	}

	s.logger.InfoContext(ctx, "sweet purchased",
		slog.Int("id", updated.ID), slog.Int("amount", amount), slog.Int("remaining", updated.Quantity))
	fmt.Fprintf(s.out, "✅ Purchased %d %s(s) successfully!\n", amount, updated.Name)
	fmt.Fprintf(s.out, "Remaining stock: %d\n", updated.Quantity)
	return nil
}

func (s *Shell) restockSweet(ctx context.Context) error {
	s.printTitle("📦 Restock Sweet")

	sweet, err := s.promptExisting(ctx, "Enter sweet ID: ")
	if err != nil || sweet == nil {
		return err
	}
	fmt.Fprintf(s.out, "Sweet: %s\n", sweet.Name)
	fmt.Fprintf(s.out, "Current quantity: %d\n", sweet.Quantity)

	amount, err := s.promptInt(ctx, "Enter quantity to add: ")
	if err != nil {
		return err
	}
	updated, err := s.service.Restock(ctx, sweet.ID, amount)
	if err != nil {
		s.fail(ctx, "restock", err)
		return nil
	}

	s.logger.InfoContext(ctx, "sweet restocked",
		slog.Int("id", updated.ID), slog.Int("amount", amount), slog.Int("stock", updated.Quantity))
	fmt.Fprintf(s.out, "✅ Restocked %d %s(s) successfully!\n", amount, updated.Name)
	fmt.Fprintf(s.out, "New stock: %d\n", updated.Quantity)
	return nil
}

func (s *Shell) sortSweets(ctx context.Context) error {
	s.printTitle("📊 Sort Sweets")
	for i := 1; i <= len(sortChoices); i++ {
		fmt.Fprintf(s.out, "%d. Sort by %s\n", i, sortChoices[i].label)
	}

	choice, err := s.promptInt(ctx, "Enter choice: ")
	if err != nil {
		return err
	}
	selected, ok := sortChoices[choice]
	if !ok {
		s.invalidSubChoice(ctx, choice)
		return nil
	}
	order, err := s.prompt(ctx, "Order (asc/desc, blank for asc): ")
	if err != nil {
		return err
	}
	if order == "" {
		order = string(service.Ascending)
	}

	sorted, err := s.service.Sorted(ctx, selected.field, service.SortOrder(strings.ToLower(order)))
	if err != nil {
		s.fail(ctx, "sort", err)
		return nil
	}

	s.logger.InfoContext(ctx, "sweets sorted", slog.String("field", string(selected.field)), slog.String("order", order))
	fmt.Fprintf(s.out, "\n📋 Sweets sorted by %s:\n", selected.label)
	fmt.Fprintln(s.out, rule(80))
	s.printTable(sorted)
	return nil
}

func (s *Shell) showStatistics(ctx context.Context) error {
	stats := s.service.Statistics(ctx)
	s.printStatistics(stats, s.service.LowStock(ctx))
	return nil
}

func (s *Shell) updateSweet(ctx context.Context) error {
	s.printTitle("✏️  Update Sweet")

	sweet, err := s.promptExisting(ctx, "Enter sweet ID to update: ")
	if err != nil || sweet == nil {
		return err
	}
	fmt.Fprintf(s.out, "Current: %v\n", sweet)
	fmt.Fprintln(s.out, "1. Name")
	fmt.Fprintln(s.out, "2. Category")
	fmt.Fprintln(s.out, "3. Price")
	fmt.Fprintln(s.out, "4. Quantity")

	choice, err := s.promptInt(ctx, "Enter field to update: ")
	if err != nil {
		return err
	}

	var updated *service.SweetDto
	var updateErr error
	switch choice {
	case 1:
		name, err := s.prompt(ctx, "Enter new name: ")
		if err != nil {
			return err
		}
		updated, updateErr = s.service.Rename(ctx, sweet.ID, name)
	case 2:
		category, err := s.prompt(ctx, "Enter new category: ")
		if err != nil {
			return err
		}
		updated, updateErr = s.service.Recategorize(ctx, sweet.ID, category)
	case 3:
		price, err := s.promptFloat(ctx, fmt.Sprintf("Enter new price (%s): ", s.opts.Currency))
		if err != nil {
			return err
		}
		updated, updateErr = s.service.Reprice(ctx, sweet.ID, price)
	case 4:
		quantity, err := s.promptInt(ctx, "Enter new quantity: ")
		if err != nil {
			return err
		}
		updated, updateErr = s.service.Resize(ctx, sweet.ID, quantity)
	default:
		s.invalidSubChoice(ctx, choice)
		return nil
	}
	if updateErr != nil {
		s.fail(ctx, "update", updateErr)
		return nil
	}

	s.logger.InfoContext(ctx, "sweet updated", slog.Int("id", updated.ID), slog.Int("field", choice))
	fmt.Fprintln(s.out, "✅ Sweet updated successfully!")
	fmt.Fprintln(s.out, updated)
	return nil
}

// promptExisting asks for an ID and looks it up. A nil sweet with a nil error
// means the ID was unknown and the user has been told so.
func (s *Shell) promptExisting(ctx context.Context, label string) (*service.SweetDto, error) {
	id, err := s.promptInt(ctx, label)
	if err != nil {
		return nil, err
	}
	sweet, ok := s.service.FindByID(ctx, id)
	if !ok {
		s.logger.WarnContext(ctx, "sweet not found", slog.Int("id", id))
		fmt.Fprintf(s.out, "❌ Sweet with ID %d not found.\n", id)
		return nil, nil
	}
	return sweet, nil
}

func (s *Shell) invalidSubChoice(ctx context.Context, choice int) {
	s.logger.WarnContext(ctx, "invalid submenu choice", slog.Int("choice", choice))
	fmt.Fprintln(s.out, "❌ Invalid choice.")
}

func (s *Shell) fail(ctx context.Context, op string, err error) {
	s.logger.WarnContext(ctx, "command failed", slog.String("command", op), slog.Any("error", err))
	s.printError(err)
}
