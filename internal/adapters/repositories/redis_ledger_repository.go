package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every ledger key.
const DefaultRedisPrefix = "waste:ledger"

// RedisLedgerRepository keeps one list per date (RPUSH, so insertion order is
// preserved) plus a set of every date seen.
type RedisLedgerRepository struct {
	client *redis.Client
	prefix string
}

// Wire form of an AllocationRecord inside a Redis list.
type redisRecord struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	VehicleModel  string   `json:"vehicle_model"`
	DriverName    string   `json:"driver_name"`
	WasteArea     string   `json:"waste_area"`
	Distance      int      `json:"distance"`
	FuelRequired  float64  `json:"fuel_required"`
	TravelHours   int      `json:"travel_hours"`
	TravelMinutes int      `json:"travel_minutes"`
	Route         []string `json:"route"`
}

func NewRedisLedgerRepository(client *redis.Client, prefix string) *RedisLedgerRepository {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisLedgerRepository{client: client, prefix: prefix}
}

// OpenRedis connects to addr and verifies the connection with PING.
func OpenRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open redis %q: ping: %w", addr, err)
	}

	return client, nil
}

func (r *RedisLedgerRepository) datesKey() string { return r.prefix + ":dates" }

func (r *RedisLedgerRepository) dateKey(date string) string { return r.prefix + ":date:" + date }

// Store one allocation record.
func (r *RedisLedgerRepository) Append(ctx context.Context, rec domain.AllocationRecord) (err error) {
	defer obs.Time(ctx, "ledger.redis.Append")(&err)

	if r.client == nil {
		return errors.New("redis ledger repository: client is nil")
	}

	payload, err := json.Marshal(redisRecord{
		ID:            rec.ID,
		Date:          rec.Date,
		VehicleModel:  rec.VehicleModel,
		DriverName:    rec.DriverName,
		WasteArea:     rec.WasteArea,
		Distance:      rec.Distance,
		FuelRequired:  rec.FuelRequired,
		TravelHours:   rec.TravelTime.Hours,
		TravelMinutes: rec.TravelTime.Minutes,
		Route:         rec.Route,
	})
	if err != nil {
		return fmt.Errorf("append allocation %s: encode: %w", rec.ID, err)
	}

	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, r.dateKey(rec.Date), payload)
		p.SAdd(ctx, r.datesKey(), rec.Date)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append allocation %s: %w", rec.ID, err)
	}

	return nil
}

// Return the records stored for date in insertion order.
func (r *RedisLedgerRepository) ListByDate(ctx context.Context, date string) (_ []domain.AllocationRecord, err error) {
	defer obs.Time(ctx, "ledger.redis.ListByDate")(&err)

	if r.client == nil {
		return nil, errors.New("redis ledger repository: client is nil")
	}

	raw, err := r.client.LRange(ctx, r.dateKey(date), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list allocations %q: %w", date, err)
	}

	out := make([]domain.AllocationRecord, 0, len(raw))
	for i, item := range raw {
		var rr redisRecord
		if err := json.Unmarshal([]byte(item), &rr); err != nil {
			return nil, fmt.Errorf("list allocations %q: decode item #%d: %w", date, i, err)
		}
		out = append(out, domain.AllocationRecord{
			ID:           rr.ID,
			Date:         rr.Date,
			VehicleModel: rr.VehicleModel,
			DriverName:   rr.DriverName,
			WasteArea:    rr.WasteArea,
			Distance:     rr.Distance,
			FuelRequired: rr.FuelRequired,
			TravelTime:   domain.TravelTime{Hours: rr.TravelHours, Minutes: rr.TravelMinutes},
			Route:        rr.Route,
		})
	}

	return out, nil
}

func (r *RedisLedgerRepository) Dates(ctx context.Context) ([]string, error) {
	if r.client == nil {
		return nil, errors.New("redis ledger repository: client is nil")
	}

	dates, err := r.client.SMembers(ctx, r.datesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list ledger dates: %w", err)
	}
	slices.Sort(dates)
	return dates, nil
}
