package shell

import (
	"fmt"
	"strings"

	"github.com/abgdnv/sweetshop/internal/sweet/service"
)

const lowStockMarker = " ⚠️"

var menuItems = []string{
	"1. View All Sweets",
	"2. Add New Sweet",
	"3. Delete Sweet",
	"4. Search Sweets",
	"5. Purchase Sweet",
	"6. Restock Sweet",
	"7. Sort Sweets",
	"8. Display Statistics",
	"9. Update Sweet",
	"0. Exit",
}

func rule(width int) string {
	return strings.Repeat("─", width)
}

func (s *Shell) printBanner() {
	fmt.Fprintln(s.out, "╔════════════════════════════════════════╗")
	fmt.Fprintln(s.out, "║  🍬 Sweet Shop Management System 🍬   ║")
	fmt.Fprintln(s.out, "╚════════════════════════════════════════╝")
	fmt.Fprintln(s.out)
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "\n┌─────────────── MAIN MENU ───────────────┐")
	for _, item := range menuItems {
		fmt.Fprintf(s.out, "│ %-39s │\n", item)
	}
	fmt.Fprintln(s.out, "└─────────────────────────────────────────┘")
}

func (s *Shell) printTitle(title string) {
	fmt.Fprintln(s.out, title)
	fmt.Fprintln(s.out, rule(40))
}

// printTable renders sweets one per line, marking low-stock rows.
func (s *Shell) printTable(sweets []service.SweetDto) {
	fmt.Fprintf(s.out, "%-6s %-20s %-18s %10s %10s\n",
		"ID", "Name", "Category", fmt.Sprintf("Price (%s)", s.opts.Currency), "Quantity")
	fmt.Fprintln(s.out, rule(80))
	for _, sweet := range sweets {
		marker := ""
		if sweet.IsLowStock() {
			marker = lowStockMarker
		}
		fmt.Fprintf(s.out, "%-6d %-20s %-18s %10.2f %10d%s\n",
			sweet.ID, sweet.Name, sweet.Category, sweet.Price, sweet.Quantity, marker)
	}
	fmt.Fprintln(s.out, rule(80))
}

func (s *Shell) printResults(sweets []service.SweetDto) {
	fmt.Fprintln(s.out, "\n📋 Search Results:")
	fmt.Fprintln(s.out, rule(80))
	if len(sweets) == 0 {
		fmt.Fprintln(s.out, "No sweets found matching your criteria.")
		return
	}
	s.printTable(sweets)
	fmt.Fprintf(s.out, "Found: %d item(s)\n", len(sweets))
}

func (s *Shell) printStatistics(stats service.Statistics, lowStock []service.SweetDto) {
	s.printTitle("📊 Inventory Statistics")
	fmt.Fprintf(s.out, "Total Items: %d\n", stats.Count)
	fmt.Fprintf(s.out, "Total Quantity: %s\n", stats.TotalQuantity)
	fmt.Fprintf(s.out, "Total Value: %s%.2f\n", s.opts.Currency, stats.TotalValue)
	fmt.Fprintf(s.out, "Average Price: %s%.2f\n", s.opts.Currency, stats.AveragePrice)
	fmt.Fprintf(s.out, "Low Stock Items: %d\n", stats.LowStockCount)
	fmt.Fprintf(s.out, "Categories: %d\n", stats.Categories)

	fmt.Fprintln(s.out, "\n📦 Stock Status:")
	if len(lowStock) == 0 {
		fmt.Fprintln(s.out, "  All sweets are well stocked.")
		return
	}
	for _, sweet := range lowStock {
		fmt.Fprintf(s.out, "  ⚠️  %s - Only %d left\n", sweet.Name, sweet.Quantity)
	}
}

func (s *Shell) printError(err error) {
	fmt.Fprintf(s.out, "❌ Error: %v\n", err)
}
