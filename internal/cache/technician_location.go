package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	locationKeyPrefix = "technicians:locations:" // geo set per city
	latestKeyPrefix   = "technician:fix:"
	locationTTL       = 5 * time.Minute
)

// Fix is the cached most-recent location of a technician. The append-only
// table in Postgres stays the source of truth; this is the fast read path
// for polling clients.
type Fix struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Speed     float64 `json:"speed,omitempty"`
	Heading   float64 `json:"heading,omitempty"`
	UpdatedAt int64   `json:"updated_at"`
}

type TechnicianWithDistance struct {
	TechnicianID string
	Distance     float64 // km
}

type TechnicianLocationCache interface {
	UpdateLocation(ctx context.Context, technicianID, city string, lat, lng float64, speed, heading *float64) error
	GetLocation(ctx context.Context, technicianID string) (*Fix, error)
	GetNearby(ctx context.Context, city string, lat, lng, radiusKm float64) ([]TechnicianWithDistance, error)
	Remove(ctx context.Context, technicianID, city string) error
}

type technicianLocationCache struct {
	redis *redis.Client
}

func NewTechnicianLocationCache(redisClient *redis.Client) TechnicianLocationCache {
	return &technicianLocationCache{redis: redisClient}
}

func (c *technicianLocationCache) UpdateLocation(ctx context.Context, technicianID, city string, lat, lng float64, speed, heading *float64) error {
	if city != "" {
		geoKey := locationKeyPrefix + city
		if err := c.redis.GeoAdd(ctx, geoKey, &redis.GeoLocation{
			Name:      technicianID,
			Longitude: lng,
			Latitude:  lat,
		}).Err(); err != nil {
			return err
		}
	}

	fix := Fix{
		Lat:       lat,
		Lng:       lng,
		UpdatedAt: time.Now().Unix(),
	}
	if speed != nil {
		fix.Speed = *speed
	}
	if heading != nil {
		fix.Heading = *heading
	}

	data, err := json.Marshal(fix)
	if err != nil {
		return err
	}

	return c.redis.Set(ctx, latestKeyPrefix+technicianID, data, locationTTL).Err()
}

func (c *technicianLocationCache) GetLocation(ctx context.Context, technicianID string) (*Fix, error) {
	data, err := c.redis.Get(ctx, latestKeyPrefix+technicianID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var fix Fix
	if err := json.Unmarshal(data, &fix); err != nil {
		return nil, err
	}

	return &fix, nil
}

func (c *technicianLocationCache) GetNearby(ctx context.Context, city string, lat, lng, radiusKm float64) ([]TechnicianWithDistance, error) {
	geoKey := locationKeyPrefix + city

	locations, err := c.redis.GeoRadius(ctx, geoKey, lng, lat, &redis.GeoRadiusQuery{
		Radius:   radiusKm,
		Unit:     "km",
		WithDist: true,
		Count:    50,
		Sort:     "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	result := make([]TechnicianWithDistance, 0, len(locations))
	for _, loc := range locations {
		result = append(result, TechnicianWithDistance{
			TechnicianID: loc.Name,
			Distance:     loc.Dist,
		})
	}

	return result, nil
}

func (c *technicianLocationCache) Remove(ctx context.Context, technicianID, city string) error {
	if city != "" {
		if err := c.redis.ZRem(ctx, locationKeyPrefix+city, technicianID).Err(); err != nil {
			return err
		}
	}
	return c.redis.Del(ctx, latestKeyPrefix+technicianID).Err()
}
