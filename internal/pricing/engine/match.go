package engine

import (
	"sort"
	"time"

	ruledomain "github.com/joshuahuffman02/Keepr-sub014/internal/pricingrule/domain"
)

// Match filters a rule set to the rules that apply on date for the given site
// class and returns them ordered by (priority asc, id asc). Snowflake IDs are
// monotonic, so ID order is creation order; that tiebreak is a hard contract,
// because the resolver's output depends on fold order.
//
// A rule matches only when it is active, its site-class scope is absent or
// equals siteClassID, the date falls inside its inclusive date range (if
// any), and the date's weekday is in its day-of-week mask (if any). Only the
// date part of the arguments is considered.
func Match(rules []ruledomain.PricingRule, date time.Time, siteClassID string) []ruledomain.PricingRule {
	day := dateOnly(date)

	matched := make([]ruledomain.PricingRule, 0, len(rules))
	for _, r := range rules {
		if ruleMatches(r, day, siteClassID) {
			matched = append(matched, r)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority < matched[j].Priority
		}
		return matched[i].ID < matched[j].ID
	})

	return matched
}

func ruleMatches(r ruledomain.PricingRule, day time.Time, siteClassID string) bool {
	if !r.Active {
		return false
	}
	if r.SiteClassID != nil && *r.SiteClassID != siteClassID {
		return false
	}
	if r.StartDate != nil && day.Before(dateOnly(*r.StartDate)) {
		return false
	}
	if r.EndDate != nil && day.After(dateOnly(*r.EndDate)) {
		return false
	}
	if len(r.DowMask) > 0 && !maskContains(r.DowMask, int(day.Weekday())) {
		return false
	}
	return true
}

func maskContains(mask []int, weekday int) bool {
	for _, d := range mask {
		if d == weekday {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
