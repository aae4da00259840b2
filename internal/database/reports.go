package database

import (
	"time"

	"e-kasir/internal/models"

	"gorm.io/gorm"
)

// Reports answers the analytics questions the dashboard and the AI
// assistant ask over transaction history.
type Reports struct {
	db *gorm.DB
}

func NewReports(db *gorm.DB) *Reports {
	return &Reports{db: db}
}

type TopSeller struct {
	ProductName string  `json:"product_name"`
	Sold        int     `json:"sold"`
	Revenue     float64 `json:"revenue"`
}

type DailyRevenue struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// Summary is the analytics payload behind the reports endpoint.
type Summary struct {
	TotalRevenue float64              `json:"total_revenue"`
	TotalProfit  float64              `json:"total_profit"`
	TotalOrders  int64                `json:"total_orders"`
	TopSelling   []TopSeller          `json:"top_selling"`
	Daily        []DailyRevenue       `json:"daily"`
	RecentSales  []models.Transaction `json:"recent_sales"`
}

func (r *Reports) Summary() (*Summary, error) {
	var data Summary

	// COALESCE ensures we get 0 instead of NULL if no sales exist
	err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&data.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(profit), 0)").
		Scan(&data.TotalProfit).Error
	if err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.Transaction{}).Count(&data.TotalOrders).Error; err != nil {
		return nil, err
	}

	err = r.db.Table("transaction_items").
		Select("transaction_items.name as product_name, SUM(transaction_items.quantity) as sold, SUM(transaction_items.quantity * transaction_items.price) as revenue").
		Group("transaction_items.name").
		Order("sold desc").
		Limit(5).
		Scan(&data.TopSelling).Error
	if err != nil {
		return nil, err
	}

	data.Daily, err = r.DailyRevenue(7)
	if err != nil {
		return nil, err
	}

	err = r.db.Preload("Items").
		Order("date desc").
		Limit(10).
		Find(&data.RecentSales).Error
	if err != nil {
		return nil, err
	}

	return &data, nil
}

// RangeResult holds revenue figures for a date window.
type RangeResult struct {
	TotalRevenue float64
	TotalCount   int64
}

// Range calculates sales within a specific date range.
func (r *Reports) Range(start, end time.Time) (*RangeResult, error) {
	var result RangeResult

	err := r.db.Model(&models.Transaction{}).
		Where("date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&models.Transaction{}).
		Where("date BETWEEN ? AND ?", start, end).
		Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// DailyRevenue buckets revenue per calendar day over the last n days.
// Bucketing happens in Go so the same query works on MySQL and SQLite.
func (r *Reports) DailyRevenue(days int) ([]DailyRevenue, error) {
	since := time.Now().AddDate(0, 0, -days+1)
	since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, since.Location())

	var sales []models.Transaction
	err := r.db.Where("date >= ?", since).
		Order("date asc").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*DailyRevenue)
	order := make([]string, 0, days)
	for i := 0; i < days; i++ {
		day := since.AddDate(0, 0, i).Format("2006-01-02")
		buckets[day] = &DailyRevenue{Day: day}
		order = append(order, day)
	}

	for _, s := range sales {
		day := s.Date.Format("2006-01-02")
		if b, ok := buckets[day]; ok {
			b.Revenue += s.Total
			b.Orders++
		}
	}

	out := make([]DailyRevenue, 0, len(order))
	for _, day := range order {
		out = append(out, *buckets[day])
	}
	return out, nil
}
