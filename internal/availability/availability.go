// Package availability filters a campground's sites down to those bookable
// for a stay, given existing reservations and maintenance blocks.
package availability

import (
	"strings"
	"time"
)

type Site struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SiteClassID   string `json:"site_class_id"`
	BaseRateCents *int64 `json:"base_rate_cents,omitempty"`
}

type Reservation struct {
	SiteID        string    `json:"site_id"`
	ArrivalDate   time.Time `json:"arrival_date"`
	DepartureDate time.Time `json:"departure_date"`
	Status        string    `json:"status"`
}

type MaintenanceBlock struct {
	SiteID    string    `json:"site_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
}

type Result struct {
	AvailableSites []Site            `json:"available_sites"`
	Blocked        map[string]string `json:"blocked,omitempty"`
}

// Reservation statuses that do not occupy a site.
var vacatedStatuses = map[string]bool{
	"cancelled":   true,
	"canceled":    true,
	"checked_out": true,
	"no_show":     true,
}

// FilterAvailableSites returns the sites with no conflicting reservation or
// maintenance block over [arrival, departure). Reservations occupy nights
// [arrival, departure); maintenance blocks occupy their inclusive date range.
func FilterAvailableSites(
	sites []Site,
	arrival, departure time.Time,
	reservations []Reservation,
	maintenance []MaintenanceBlock,
) Result {
	arrival = dateOnly(arrival)
	departure = dateOnly(departure)

	result := Result{
		AvailableSites: make([]Site, 0, len(sites)),
		Blocked:        make(map[string]string),
	}

	for _, site := range sites {
		if reason := blockReason(site.ID, arrival, departure, reservations, maintenance); reason != "" {
			result.Blocked[site.ID] = reason
			continue
		}
		result.AvailableSites = append(result.AvailableSites, site)
	}

	if len(result.Blocked) == 0 {
		result.Blocked = nil
	}
	return result
}

func blockReason(siteID string, arrival, departure time.Time, reservations []Reservation, maintenance []MaintenanceBlock) string {
	for _, r := range reservations {
		if r.SiteID != siteID || vacatedStatuses[strings.ToLower(strings.TrimSpace(r.Status))] {
			continue
		}
		if overlaps(arrival, departure, dateOnly(r.ArrivalDate), dateOnly(r.DepartureDate)) {
			return "reserved"
		}
	}

	for _, m := range maintenance {
		if m.SiteID != siteID {
			continue
		}
		// End date is inclusive: a block through the 10th occupies the
		// night of the 10th.
		if overlaps(arrival, departure, dateOnly(m.StartDate), dateOnly(m.EndDate).AddDate(0, 0, 1)) {
			if strings.TrimSpace(m.Reason) != "" {
				return "maintenance: " + m.Reason
			}
			return "maintenance"
		}
	}

	return ""
}

// overlaps reports whether half-open night ranges [aStart, aEnd) and
// [bStart, bEnd) share at least one night.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
