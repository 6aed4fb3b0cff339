package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisDispatcher pushes jobs onto redis lists consumed by the pool.
type RedisDispatcher struct {
	rdb *redis.Client
}

func NewRedisDispatcher(rdb *redis.Client) *RedisDispatcher {
	return &RedisDispatcher{rdb: rdb}
}

func (d *RedisDispatcher) Enqueue(ctx context.Context, queue string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, raw).Err()
}

// Handlers holds the collaborators jobs need. Missing collaborators make
// the matching jobs no-ops.
type Handlers struct {
	Barcode BarcodeHandler
	Email   EmailHandler
}

type BarcodeHandler interface {
	HandleBarcode(ctx context.Context, job BarcodeJob) error
}

type EmailHandler interface {
	HandleEmail(ctx context.Context, job EmailJob) error
}

// StartWorkerPool launches n workers that block-pop jobs from the queues
// until ctx is cancelled.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, n int, h Handlers) {
	for i := 0; i < n; i++ {
		go worker(ctx, rdb, i, h)
	}
	log.Info().Int("workers", n).Msg("pool de trabajadores iniciado")
}

func worker(ctx context.Context, rdb *redis.Client, id int, h Handlers) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := rdb.BRPop(ctx, 5*time.Second, QueueBarcode, QueueEmail).Result()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			log.Warn().Err(err).Int("worker", id).Msg("error leyendo la cola")
			time.Sleep(time.Second)
			continue
		}
		if len(res) != 2 {
			continue
		}
		procesar(ctx, id, res[0], []byte(res[1]), h)
	}
}

func procesar(ctx context.Context, id int, queue string, raw []byte, h Handlers) {
	var err error
	switch queue {
	case QueueBarcode:
		if h.Barcode == nil {
			return
		}
		var job BarcodeJob
		if err = json.Unmarshal(raw, &job); err == nil {
			err = h.Barcode.HandleBarcode(ctx, job)
		}
	case QueueEmail:
		if h.Email == nil {
			return
		}
		var job EmailJob
		if err = json.Unmarshal(raw, &job); err == nil {
			err = h.Email.HandleEmail(ctx, job)
		}
	default:
		return
	}
	if err != nil {
		log.Error().Err(err).Int("worker", id).Str("queue", queue).Msg("trabajo fallido")
	}
}
