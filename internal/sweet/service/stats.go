package service

import (
	"context"

	"github.com/abgdnv/sweetshop/internal/sweet/store"
	"github.com/shopspring/decimal"
)

// Statistics holds aggregates over the inventory at one point in time.
type Statistics struct {
	Count         int
	TotalQuantity decimal.Decimal // exact, may exceed math.MaxInt
	TotalValue    float64
	AveragePrice  float64
	LowStockCount int
	Categories    int
}

// Statistics computes inventory aggregates. Money sums are accumulated in decimal
// so that repeated additions do not drift.
func (s *Service) Statistics(ctx context.Context) Statistics {
	_, span := s.tracer.Start(ctx, "SweetService.Statistics")
	defer span.End()

	sweets := s.repository.FindAll()
	return computeStatistics(sweets)
}

func computeStatistics(sweets []store.Sweet) Statistics {
	var stats Statistics
	totalQuantity := decimal.Zero
	totalValue := decimal.Zero
	priceSum := decimal.Zero
	categories := make(map[string]struct{})

	for _, sweet := range sweets {
		price := decimal.NewFromFloat(sweet.Price)
		quantity := decimal.NewFromInt(int64(sweet.Quantity))
		totalQuantity = totalQuantity.Add(quantity)
		totalValue = totalValue.Add(price.Mul(quantity))
		priceSum = priceSum.Add(price)
		if sweet.IsLowStock() {
			stats.LowStockCount++
		}
		categories[sweet.Category] = struct{}{}
	}

	stats.Count = len(sweets)
	stats.Categories = len(categories)
	stats.TotalQuantity = totalQuantity
	stats.TotalValue = totalValue.InexactFloat64()
	if stats.Count > 0 {
		stats.AveragePrice = priceSum.Div(decimal.NewFromInt(int64(stats.Count))).InexactFloat64()
	}
	return stats
}
