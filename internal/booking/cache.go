package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/metinatakli/movie-booking-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const DefaultAvailabilityTTL = 30 * time.Second

// AvailabilityCache keeps the booked seats of a showing so repeated seat map requests
// don't have to scan all bookings of the showing.
//
// Entries are stored per generation. Invalidate starts a new generation, so a fill computed from
// a store read that began before the invalidation is written under a generation nobody reads.
// Callers must read Generation before querying the store and pass it to StoreBookedSeats.
type AvailabilityCache interface {
	Generation(ctx context.Context, showing domain.Showing) (int64, error)
	BookedSeats(ctx context.Context, showing domain.Showing, generation int64) (domain.SeatSet, bool, error)
	StoreBookedSeats(ctx context.Context, showing domain.Showing, generation int64, seats domain.SeatSet) error
	Invalidate(ctx context.Context, showing domain.Showing) error
}

type RedisAvailabilityCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisAvailabilityCache(client redis.UniversalClient, ttl time.Duration) *RedisAvailabilityCache {
	if ttl <= 0 {
		ttl = DefaultAvailabilityTTL
	}

	return &RedisAvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisAvailabilityCache) Generation(ctx context.Context, showing domain.Showing) (int64, error) {
	generation, err := c.client.Get(ctx, generationKey(showing)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, err
	}

	return generation, nil
}

func (c *RedisAvailabilityCache) BookedSeats(ctx context.Context, showing domain.Showing, generation int64) (domain.SeatSet, bool, error) {
	data, err := c.client.Get(ctx, availabilityKey(showing, generation)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, err
	}

	var seats []int

	err = json.Unmarshal(data, &seats)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode cached seats for %s: %w", showing, err)
	}

	return domain.SeatSet(seats), true, nil
}

func (c *RedisAvailabilityCache) StoreBookedSeats(ctx context.Context, showing domain.Showing, generation int64, seats domain.SeatSet) error {
	if seats == nil {
		seats = domain.SeatSet{}
	}

	data, err := json.Marshal(seats)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, availabilityKey(showing, generation), data, c.ttl).Err()
}

// Invalidate bumps the generation of the showing. Entries of older generations expire with their TTL.
func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, showing domain.Showing) error {
	return c.client.Incr(ctx, generationKey(showing)).Err()
}

func generationKey(showing domain.Showing) string {
	return fmt.Sprintf("seat_availability_gen:%s", showing)
}

func availabilityKey(showing domain.Showing, generation int64) string {
	return fmt.Sprintf("seat_availability:%s:%d", showing, generation)
}
