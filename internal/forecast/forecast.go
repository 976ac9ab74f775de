// Package forecast projects near-term revenue from historical daily takings.
// Projection is a per-weekday trailing average, which captures the weekend
// lift that dominates campground demand.
package forecast

import (
	"errors"
	"math"
	"sort"
	"time"
)

type HistoricalDay struct {
	Date          time.Time `json:"date"`
	RevenueCents  int64     `json:"revenue_cents"`
	OccupiedSites int       `json:"occupied_sites"`
}

type Request struct {
	History     []HistoricalDay `json:"history"`
	HorizonDays int             `json:"horizon_days"`
	WindowDays  int             `json:"window_days"`
	TotalSites  int             `json:"total_sites"`
}

type DayForecast struct {
	Date                  time.Time `json:"date"`
	ProjectedRevenueCents int64     `json:"projected_revenue_cents"`
	ProjectedOccupancy    float64   `json:"projected_occupancy"`
}

type Result struct {
	Days                []DayForecast `json:"days"`
	TotalProjectedCents int64         `json:"total_projected_cents"`
}

var (
	ErrNoHistory      = errors.New("no_history")
	ErrInvalidHorizon = errors.New("invalid_horizon")
)

// Generate projects HorizonDays of revenue starting the day after the last
// historical entry. Only the trailing WindowDays of history feed the
// averages; weekdays with no sample in the window fall back to the overall
// window mean.
func Generate(req Request) (*Result, error) {
	if len(req.History) == 0 {
		return nil, ErrNoHistory
	}
	if req.HorizonDays <= 0 {
		return nil, ErrInvalidHorizon
	}

	history := make([]HistoricalDay, len(req.History))
	copy(history, req.History)
	sort.Slice(history, func(i, j int) bool { return history[i].Date.Before(history[j].Date) })

	window := req.WindowDays
	if window <= 0 || window > len(history) {
		window = len(history)
	}
	trailing := history[len(history)-window:]

	var (
		revenueByDow   [7]float64
		occupancyByDow [7]float64
		samplesByDow   [7]int
		totalRevenue   float64
		totalOccupancy float64
	)
	for _, day := range trailing {
		dow := int(day.Date.UTC().Weekday())
		revenueByDow[dow] += float64(day.RevenueCents)
		if req.TotalSites > 0 {
			occupancyByDow[dow] += float64(day.OccupiedSites) / float64(req.TotalSites)
			totalOccupancy += float64(day.OccupiedSites) / float64(req.TotalSites)
		}
		samplesByDow[dow]++
		totalRevenue += float64(day.RevenueCents)
	}
	meanRevenue := totalRevenue / float64(len(trailing))
	meanOccupancy := totalOccupancy / float64(len(trailing))

	start := dateOnly(history[len(history)-1].Date).AddDate(0, 0, 1)
	result := &Result{Days: make([]DayForecast, 0, req.HorizonDays)}

	for i := 0; i < req.HorizonDays; i++ {
		date := start.AddDate(0, 0, i)
		dow := int(date.Weekday())

		revenue := meanRevenue
		occupancy := meanOccupancy
		if samplesByDow[dow] > 0 {
			revenue = revenueByDow[dow] / float64(samplesByDow[dow])
			occupancy = occupancyByDow[dow] / float64(samplesByDow[dow])
		}

		day := DayForecast{
			Date:                  date,
			ProjectedRevenueCents: int64(math.Floor(revenue + 0.5)),
			ProjectedOccupancy:    occupancy,
		}
		result.Days = append(result.Days, day)
		result.TotalProjectedCents += day.ProjectedRevenueCents
	}

	return result, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
