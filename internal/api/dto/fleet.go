package dto

type VehicleResponse struct {
	Model        string  `json:"model"`
	LoadCapacity int     `json:"load_capacity"`
	Mileage      float64 `json:"mileage"`
	Allotted     bool    `json:"allotted"`
}

type DriverResponse struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Address  string `json:"address"`
	Allotted bool   `json:"allotted"`
}

type TaskResponse struct {
	// 1-based, as accepted by AllocationRequest.TaskIndex.
	Index    int    `json:"index"`
	Area     string `json:"area"`
	Quantity int    `json:"quantity"`
}

type ListVehiclesResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

type ListDriversResponse struct {
	Drivers []DriverResponse `json:"drivers"`
}

type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

type AvailabilityResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
	Drivers  []DriverResponse  `json:"drivers"`
}
