package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"waste-route-service/internal/domain"
)

// Column list shared by the SQL ledger repositories, in scan order.
const allocationColumns = `id, alloc_date, vehicle_model, driver_name, waste_area,
		distance, fuel_required, travel_hours, travel_minutes, route`

func encodeRoute(route []string) (string, error) {
	if route == nil {
		route = []string{}
	}
	b, err := json.Marshal(route)
	if err != nil {
		return "", fmt.Errorf("encode route: %w", err)
	}
	return string(b), nil
}

func scanAllocations(rows *sql.Rows) ([]domain.AllocationRecord, error) {
	out := make([]domain.AllocationRecord, 0, 16)
	for rows.Next() {
		var rec domain.AllocationRecord
		var route string
		err := rows.Scan(
			&rec.ID,
			&rec.Date,
			&rec.VehicleModel,
			&rec.DriverName,
			&rec.WasteArea,
			&rec.Distance,
			&rec.FuelRequired,
			&rec.TravelTime.Hours,
			&rec.TravelTime.Minutes,
			&route,
		)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(route), &rec.Route); err != nil {
			return nil, fmt.Errorf("decode route of %s: %w", rec.ID, err)
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return out, nil
}

func scanDates(rows *sql.Rows) ([]string, error) {
	dates := make([]string, 0, 8)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return dates, nil
}
