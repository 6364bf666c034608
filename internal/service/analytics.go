package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"iptv-storefront/internal/model"
	"iptv-storefront/internal/repository"

	"github.com/shopspring/decimal"
)

type PlanRevenue struct {
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type MonthlyPoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
	Clients int     `json:"clients"`
}

type TopProduct struct {
	Name    string  `json:"name"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type RegionStat struct {
	Region     string  `json:"region"`
	Orders     int     `json:"orders"`
	Percentage float64 `json:"percentage"`
}

type AnalyticsReport struct {
	TotalRevenue    float64                `json:"totalRevenue"`
	TotalOrders     int                    `json:"totalOrders"`
	TotalClients    int                    `json:"totalClients"`
	ConversionRate  float64                `json:"conversionRate"`
	RevenueByPlan   map[string]PlanRevenue `json:"revenueByPlan"`
	OrdersByCountry map[string]int         `json:"ordersByCountry"`
	MonthlyData     []MonthlyPoint         `json:"monthlyData"`
	TopProducts     []TopProduct           `json:"topProducts"`
	RegionalData    []RegionStat           `json:"regionalData"`
}

type TrafficPoint struct {
	Date   string `json:"date"`
	Visits int    `json:"visits"`
}

type TrafficReport struct {
	Visits        []TrafficPoint `json:"visits"`
	TotalVisits   int            `json:"totalVisits"`
	LastVisitDate *time.Time     `json:"lastVisitDate"`
}

type AnalyticsService interface {
	Report(ctx context.Context) (*AnalyticsReport, error)
	Traffic(ctx context.Context) (*TrafficReport, error)
}

type analyticsServiceImpl struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	clientDataRepo repository.ClientDataRepository
}

func NewAnalyticsService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	clientDataRepo repository.ClientDataRepository,
) AnalyticsService {
	return &analyticsServiceImpl{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		clientDataRepo: clientDataRepo,
	}
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))
}

func (s *analyticsServiceImpl) Report(ctx context.Context) (*AnalyticsReport, error) {
	orders, err := s.orderRepo.List(ctx, repository.OrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	clients, err := s.clientDataRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	priceByProduct := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		priceByProduct[p.ID] = p.PriceUsd
	}

	totalRevenue := decimal.Zero
	revenueByPlan := make(map[string]PlanRevenue)
	ordersByCountry := make(map[string]int)
	planRevenue := make(map[string]decimal.Decimal)

	for _, order := range orders {
		region := order.Region
		if region == "" {
			region = "Unknown"
		}
		ordersByCountry[region]++

		if order.PaymentStatus != model.PaymentCompleted {
			continue
		}
		price := priceByProduct[order.ProductID]
		totalRevenue = totalRevenue.Add(price)
		planRevenue[order.ProductID] = planRevenue[order.ProductID].Add(price)

		entry := revenueByPlan[order.ProductID]
		entry.Orders++
		revenueByPlan[order.ProductID] = entry
	}
	for planID, revenue := range planRevenue {
		entry := revenueByPlan[planID]
		entry.Revenue = revenue.InexactFloat64()
		revenueByPlan[planID] = entry
	}

	// Visits proxy: client submissions, falling back to orders.
	visits := len(clients)
	if len(orders) > visits {
		visits = len(orders)
	}
	conversionRate := 0.0
	if visits > 0 {
		rate := decimal.NewFromInt(int64(len(orders))).
			Div(decimal.NewFromInt(int64(visits))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
		conversionRate = rate.InexactFloat64()
	}

	monthly := s.monthlyData(orders, clients, priceByProduct)
	top := topProducts(planRevenue, revenueByPlan)
	regional := regionalData(ordersByCountry)

	return &AnalyticsReport{
		TotalRevenue:    totalRevenue.InexactFloat64(),
		TotalOrders:     len(orders),
		TotalClients:    len(clients),
		ConversionRate:  conversionRate,
		RevenueByPlan:   revenueByPlan,
		OrdersByCountry: ordersByCountry,
		MonthlyData:     monthly,
		TopProducts:     top,
		RegionalData:    regional,
	}, nil
}

func (s *analyticsServiceImpl) monthlyData(orders []*model.Order, clients []*model.ClientData, priceByProduct map[string]decimal.Decimal) []MonthlyPoint {
	type bucket struct {
		revenue decimal.Decimal
		orders  int
		clients int
	}

	now := time.Now()
	cutoff := time.Date(now.Year(), now.Month()-5, 1, 0, 0, 0, 0, now.Location())
	buckets := make(map[string]*bucket)

	get := func(key string) *bucket {
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		return b
	}

	for _, order := range orders {
		if order.CreatedAt.Before(cutoff) {
			continue
		}
		b := get(monthKey(order.CreatedAt))
		b.orders++
		if order.PaymentStatus == model.PaymentCompleted {
			b.revenue = b.revenue.Add(priceByProduct[order.ProductID])
		}
	}
	for _, c := range clients {
		if c.CreatedAt.Before(cutoff) {
			continue
		}
		get(monthKey(c.CreatedAt)).clients++
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	points := make([]MonthlyPoint, 0, len(keys))
	for _, key := range keys {
		var year, month int
		fmt.Sscanf(key, "%d-%d", &year, &month)
		label := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan")

		b := buckets[key]
		points = append(points, MonthlyPoint{
			Month:   label,
			Revenue: b.revenue.InexactFloat64(),
			Orders:  b.orders,
			Clients: b.clients,
		})
	}

	return points
}

func topProducts(planRevenue map[string]decimal.Decimal, revenueByPlan map[string]PlanRevenue) []TopProduct {
	top := make([]TopProduct, 0, len(planRevenue))
	for planID, revenue := range planRevenue {
		top = append(top, TopProduct{
			Name:    planID,
			Orders:  revenueByPlan[planID].Orders,
			Revenue: revenue.InexactFloat64(),
		})
	}

	sort.Slice(top, func(i, j int) bool { return top[i].Revenue > top[j].Revenue })
	if len(top) > 5 {
		top = top[:5]
	}

	return top
}

func regionalData(ordersByCountry map[string]int) []RegionStat {
	total := 0
	for _, count := range ordersByCountry {
		total += count
	}
	if total == 0 {
		total = 1
	}

	stats := make([]RegionStat, 0, len(ordersByCountry))
	for region, count := range ordersByCountry {
		pct := decimal.NewFromInt(int64(count)).
			Div(decimal.NewFromInt(int64(total))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
		stats = append(stats, RegionStat{
			Region:     region,
			Orders:     count,
			Percentage: pct.InexactFloat64(),
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Orders > stats[j].Orders })
	if len(stats) > 10 {
		stats = stats[:10]
	}

	return stats
}

func (s *analyticsServiceImpl) Traffic(ctx context.Context) (*TrafficReport, error) {
	since := time.Now().AddDate(0, 0, -30)

	clients, err := s.clientDataRepo.FindSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list recent clients: %w", err)
	}

	visitsByDay := make(map[string]int)
	for _, c := range clients {
		visitsByDay[c.CreatedAt.Format("2006-01-02")]++
	}

	days := make([]string, 0, len(visitsByDay))
	for day := range visitsByDay {
		days = append(days, day)
	}
	sort.Strings(days)

	timeline := make([]TrafficPoint, 0, len(days))
	for _, day := range days {
		timeline = append(timeline, TrafficPoint{Date: day, Visits: visitsByDay[day]})
	}

	report := &TrafficReport{
		Visits:      timeline,
		TotalVisits: len(clients),
	}
	if len(clients) > 0 {
		last := clients[len(clients)-1].CreatedAt
		report.LastVisitDate = &last
	}

	return report, nil
}
