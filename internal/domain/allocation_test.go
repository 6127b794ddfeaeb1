package domain

import (
	"errors"
	"testing"
)

func TestLedgerAppendOnly(t *testing.T) {
	l := NewLedger()

	l.Append("02/01/2026", AllocationRecord{VehicleModel: "B", Route: []string{"X", "Y"}})
	l.Append("01/01/2026", AllocationRecord{VehicleModel: "A"})
	l.Append("02/01/2026", AllocationRecord{VehicleModel: "C"})

	if l.Len() != 3 {
		t.Fatalf("len = %d, want 3", l.Len())
	}

	dates := l.Dates()
	if len(dates) != 2 || dates[0] != "01/01/2026" || dates[1] != "02/01/2026" {
		t.Fatalf("dates = %v", dates)
	}

	recs := l.Records("02/01/2026")
	if len(recs) != 2 || recs[0].VehicleModel != "B" || recs[1].VehicleModel != "C" {
		t.Fatalf("records not in insertion order: %+v", recs)
	}

	// mutating a returned copy must not leak into the ledger
	recs[0].Route[0] = "mutated"
	if got := l.Records("02/01/2026")[0].Route[0]; got != "X" {
		t.Fatalf("ledger mutated through Records(): %q", got)
	}

	if recs := l.Records("03/01/2026"); len(recs) != 0 {
		t.Fatalf("unknown date should have no records, got %d", len(recs))
	}
}

func TestLedgerClone(t *testing.T) {
	l := NewLedger()
	l.Append("01/01/2026", AllocationRecord{VehicleModel: "A", Route: []string{"X"}})

	c := l.Clone()
	c.Append("01/01/2026", AllocationRecord{VehicleModel: "B"})

	if l.Len() != 1 || c.Len() != 2 {
		t.Fatalf("clone shares state: original=%d clone=%d", l.Len(), c.Len())
	}
}

func TestNewTravelTime(t *testing.T) {
	tests := []struct {
		hours float64
		want  TravelTime
	}{
		{hours: 0, want: TravelTime{}},
		{hours: 1.25, want: TravelTime{Hours: 1, Minutes: 15}},
		{hours: 50.0 / 40.0, want: TravelTime{Hours: 1, Minutes: 15}},
		{hours: 25.0 / 40.0, want: TravelTime{Hours: 0, Minutes: 37}},
	}

	for _, tc := range tests {
		if got := NewTravelTime(tc.hours); got != tc.want {
			t.Errorf("NewTravelTime(%v) = %+v, want %+v", tc.hours, got, tc.want)
		}
	}
}

func TestRouteString(t *testing.T) {
	r := AllocationRecord{Route: []string{"Kanabargi", "Belgaum", "Gandhinagar"}}
	if got := r.RouteString(); got != "Kanabargi -> Belgaum -> Gandhinagar" {
		t.Fatalf("route string = %q", got)
	}
}

func TestValidateDate(t *testing.T) {
	valid := []string{"01/01/2026", "31/12/1999", "29/02/2024", "10/10/0001"}
	for _, d := range valid {
		if err := ValidateDate(d); err != nil {
			t.Errorf("ValidateDate(%q) unexpected error: %v", d, err)
		}
	}

	invalid := []string{"", "1/1/2026", "32/01/2026", "00/01/2026", "01/13/2026", "01/00/2026", "01-01-2026", "01/01/26", " 01/01/2026", "01/01/2026x"}
	for _, d := range invalid {
		err := ValidateDate(d)
		if err == nil {
			t.Errorf("ValidateDate(%q) expected error", d)
			continue
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ValidateDate(%q) error %v is not ErrInvalidDate", d, err)
		}
	}
}

func TestAllocationErrorUnwrap(t *testing.T) {
	err := error(&AllocationError{Kind: ErrNoRoute, Area: "Island", Date: "01/01/2026", Quantity: 5})

	if !errors.Is(err, ErrNoRoute) {
		t.Fatalf("errors.Is should match the kind")
	}
	if errors.Is(err, ErrUnknownArea) {
		t.Fatalf("errors.Is should not match another kind")
	}

	var ae *AllocationError
	if !errors.As(err, &ae) || ae.Area != "Island" {
		t.Fatalf("errors.As failed: %v", err)
	}
}
