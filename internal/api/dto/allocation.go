package dto

// AllocationRequest is either an ad-hoc task (area + quantity) or a
// registered task selected by its 1-based task_index.
type AllocationRequest struct {
	Area      string `json:"area"`
	Quantity  int    `json:"quantity"`
	TaskIndex *int   `json:"task_index"`
	Date      string `json:"date"`
}

type TravelTimeResponse struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type AllocationResponse struct {
	ID           string             `json:"id"`
	Date         string             `json:"date"`
	VehicleModel string             `json:"vehicle_model"`
	DriverName   string             `json:"driver_name"`
	WasteArea    string             `json:"waste_area"`
	Distance     int                `json:"distance"`
	FuelRequired float64            `json:"fuel_required"`
	TravelTime   TravelTimeResponse `json:"travel_time"`
	Route        []string           `json:"route"`
	RouteText    string             `json:"route_text"`
	// Persisted is false when a ledger repository is configured but the
	// record could not be written to it.
	Persisted *bool `json:"persisted,omitempty"`
}

type LedgerDateResponse struct {
	Date        string               `json:"date"`
	Allocations []AllocationResponse `json:"allocations"`
}

type ListAllocationsResponse struct {
	Source string               `json:"source"`
	Dates  []LedgerDateResponse `json:"dates"`
}

type ExportFileResponse struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
}
