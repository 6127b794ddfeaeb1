package domain

import (
	"slices"
	"strings"
)

// Whole hours plus remaining minutes of a trip, both truncated.
type TravelTime struct {
	Hours   int
	Minutes int
}

// NewTravelTime splits a duration expressed in fractional hours.
func NewTravelTime(hours float64) TravelTime {
	h := int(hours)
	return TravelTime{Hours: h, Minutes: int((hours - float64(h)) * 60)}
}

// Result of one successful allocation: which vehicle and driver serve the
// waste area on a date, over which route, at what fuel cost.
type AllocationRecord struct {
	ID           string
	Date         string
	VehicleModel string
	DriverName   string
	WasteArea    string
	Distance     int
	FuelRequired float64
	TravelTime   TravelTime
	Route        []string
}

// RouteString renders the route as "A -> B -> C".
func (r AllocationRecord) RouteString() string {
	return strings.Join(r.Route, " -> ")
}

// Append-only, date-keyed record of completed allocations.
// Records for a date keep insertion order; keys are never removed.
type Ledger struct {
	entries map[string][]AllocationRecord
	size    int
}

func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string][]AllocationRecord)}
}

// Append adds rec under date. Callers validate the date beforehand.
func (l *Ledger) Append(date string, rec AllocationRecord) {
	rec.Route = slices.Clone(rec.Route)
	l.entries[date] = append(l.entries[date], rec)
	l.size++
}

// Records returns a copy of the records for date in insertion order.
func (l *Ledger) Records(date string) []AllocationRecord {
	recs := l.entries[date]
	out := make([]AllocationRecord, len(recs))
	for i, r := range recs {
		r.Route = slices.Clone(r.Route)
		out[i] = r
	}
	return out
}

// Dates returns every date key in lexicographic order.
func (l *Ledger) Dates() []string {
	dates := make([]string, 0, len(l.entries))
	for d := range l.entries {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	return dates
}

// Len is the total number of records across all dates.
func (l *Ledger) Len() int { return l.size }

// Clone returns a deep copy safe to read outside the owner's lock.
func (l *Ledger) Clone() *Ledger {
	out := NewLedger()
	for _, d := range l.Dates() {
		for _, r := range l.entries[d] {
			out.Append(d, r)
		}
	}
	return out
}
