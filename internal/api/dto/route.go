package dto

type RouteResponse struct {
	From       string             `json:"from"`
	To         string             `json:"to"`
	Distance   int                `json:"distance"`
	Route      []string           `json:"route"`
	TravelTime TravelTimeResponse `json:"travel_time"`
	Heuristic  bool               `json:"heuristic"`
}

type NeighborResponse struct {
	Name     string `json:"name"`
	Distance int    `json:"distance"`
}

type AreaResponse struct {
	Index     int                `json:"index"`
	Name      string             `json:"name"`
	Neighbors []NeighborResponse `json:"neighbors"`
}

type ListAreasResponse struct {
	Depot string         `json:"depot"`
	Areas []AreaResponse `json:"areas"`
}
