// Package cache is a thin JSON cache on top of redis. Every method is a
// no-op when the client is nil so services stay usable in unit tests and
// in deployments without redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// TTLTenant bounds how stale a cached tenant resolution may be.
const TTLTenant = 5 * time.Minute

// TTLReporte bounds how stale a cached revenue summary may be.
const TTLReporte = 5 * time.Minute

type Cache struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Cache { return &Cache{rdb: rdb} }

// GetJSON loads the value at key into dest. The second return is false on
// miss, on a disabled cache, and on decode errors.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("entrada de cache corrupta, descartada")
		c.rdb.Del(ctx, key)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("no se pudo escribir en cache")
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar cache")
	}
}

// KeyTenant is the cached user-to-parqueadero resolution.
func KeyTenant(usuarioID uuid.UUID) string {
	return fmt.Sprintf("tenant:%s", usuarioID)
}

// KeyReporteIngresos is the cached revenue summary for one tenant and day.
func KeyReporteIngresos(parqueaderoID uuid.UUID, fecha string) string {
	return fmt.Sprintf("reporte:ingresos:%s:%s", parqueaderoID, fecha)
}

// KeyReporteMedios is the cached per-payment-method breakdown.
func KeyReporteMedios(parqueaderoID uuid.UUID, fecha string) string {
	return fmt.Sprintf("reporte:medios:%s:%s", parqueaderoID, fecha)
}
