package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"waste-route-service/internal/domain"
	"waste-route-service/internal/services"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&domain.AllocationError{Kind: domain.ErrInvalidDate}, http.StatusBadRequest},
		{&domain.AllocationError{Kind: domain.ErrUnknownArea}, http.StatusNotFound},
		{&domain.AllocationError{Kind: domain.ErrUnknownTask}, http.StatusNotFound},
		{&domain.AllocationError{Kind: domain.ErrNoSuitableVehicle}, http.StatusConflict},
		{&domain.AllocationError{Kind: domain.ErrNoRoute}, http.StatusConflict},
		{&domain.AllocationError{Kind: domain.ErrNoDriver}, http.StatusConflict},
		{fmt.Errorf("shortest route: %w", domain.ErrNoRoute), http.StatusConflict},
		{fmt.Errorf("%w: boom", services.ErrNotPersisted), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestToAllocationNilRoute(t *testing.T) {
	res := toAllocation(domain.AllocationRecord{ID: "x"})
	if res.Route == nil || len(res.Route) != 0 {
		t.Fatalf("route = %#v, want empty slice", res.Route)
	}
}
