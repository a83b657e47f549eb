package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/supermarket-pos/internal/application/dto"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
)

// Valores por defecto de los tableros.
const (
	defaultSalesWindowDays = 30
	defaultTopProducts     = 10
	defaultStockThreshold  = 10
	defaultExpiryDays      = 7
)

// DashboardUseCase arma los tableros por rol a partir de consultas de solo
// lectura. Estas vistas toleran datos levemente desactualizados; el
// transactor de checkout nunca lee de aquí.
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// DailySales ventas agregadas por día de los últimos days días.
func (uc *DashboardUseCase) DailySales(ctx context.Context, days int) ([]dto.DailySalesDTO, error) {
	if days <= 0 {
		days = defaultSalesWindowDays
	}
	since := time.Now().AddDate(0, 0, -days)
	results, err := uc.repo.GetDailySales(ctx, since)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailySalesDTO, 0, len(results))
	for _, r := range results {
		out = append(out, dto.DailySalesDTO{
			Day:              r.Day.Format("2006-01-02"),
			TransactionCount: r.TransactionCount,
			UnitsSold:        r.UnitsSold,
			Revenue:          r.Revenue,
		})
	}
	return out, nil
}

// TopProducts productos más vendidos de los últimos days días.
func (uc *DashboardUseCase) TopProducts(ctx context.Context, days, limit int) ([]dto.TopProductDTO, error) {
	if days <= 0 {
		days = defaultSalesWindowDays
	}
	if limit <= 0 {
		limit = defaultTopProducts
	}
	since := time.Now().AddDate(0, 0, -days)
	results, err := uc.repo.GetTopProducts(ctx, since, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductDTO, 0, len(results))
	for _, r := range results {
		out = append(out, dto.TopProductDTO{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			UnitsSold:   r.UnitsSold,
			Revenue:     r.Revenue,
		})
	}
	return out, nil
}

// LowStock ítems con cantidad igual o inferior al umbral.
func (uc *DashboardUseCase) LowStock(ctx context.Context, threshold int64) ([]dto.LowStockDTO, error) {
	if threshold <= 0 {
		threshold = defaultStockThreshold
	}
	results, err := uc.repo.GetLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockDTO, 0, len(results))
	for _, r := range results {
		out = append(out, dto.LowStockDTO{
			ItemID:      r.ItemID,
			Barcode:     r.Barcode,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
		})
	}
	return out, nil
}

// ExpiryAlerts ítems con stock que vencen dentro de days días.
func (uc *DashboardUseCase) ExpiryAlerts(ctx context.Context, days int) ([]dto.ExpiryAlertDTO, error) {
	if days <= 0 {
		days = defaultExpiryDays
	}
	results, err := uc.repo.GetExpiryAlerts(ctx, time.Duration(days)*24*time.Hour)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.ExpiryAlertDTO, 0, len(results))
	for _, r := range results {
		out = append(out, dto.ExpiryAlertDTO{
			ItemID:      r.ItemID,
			Barcode:     r.Barcode,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			ExpiryDate:  r.ExpiryDate,
			DaysLeft:    int(r.ExpiryDate.Sub(now).Hours() / 24),
		})
	}
	return out, nil
}
