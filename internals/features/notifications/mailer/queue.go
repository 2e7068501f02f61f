package mailer

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"hoh_backend/internals/configs"
)

// Queue: antrian durable untuk job email. Redis list dipakai di produksi.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	// Dequeue blocking sampai ada job atau ctx selesai
	Dequeue(ctx context.Context) (Job, error)
}

const defaultQueueKey = "hoh:mail:queue"

/* ===================== Redis queue ===================== */

type RedisQueue struct {
	rdb *redis.Client
	key string
}

func NewRedisQueueFromEnv() *RedisQueue {
	rdb := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})
	return &RedisQueue{rdb: rdb, key: defaultQueueKey}
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = defaultQueueKey
	}
	return &RedisQueue{rdb: rdb, key: key}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	raw, err := job.Marshal()
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.key, raw).Err()
}

func (q *RedisQueue) Dequeue(ctx context.Context) (Job, error) {
	// BRPOP dengan timeout pendek supaya ctx.Done() tetap responsif
	for {
		res, err := q.rdb.BRPop(ctx, 5*time.Second, q.key).Result()
		if err == redis.Nil {
			if ctx.Err() != nil {
				return Job{}, ctx.Err()
			}
			continue
		}
		if err != nil {
			return Job{}, err
		}
		// res = [key, value]
		return UnmarshalJob([]byte(res[1]))
	}
}

func (q *RedisQueue) Close() error { return q.rdb.Close() }

/* ===================== Dispatcher ===================== */

// Dispatcher: pintu masuk fire-and-forget dari flow auth/lifecycle.
// Gagal enqueue TIDAK boleh menggagalkan operasi induk — hanya dicatat.
type Dispatcher struct {
	queue Queue
}

func NewDispatcher(queue Queue) *Dispatcher {
	return &Dispatcher{queue: queue}
}

func (d *Dispatcher) Dispatch(ctx context.Context, job Job) {
	if d == nil || d.queue == nil {
		log.Printf("[WARN] mail queue tidak dikonfigurasi, skip email %s ke %s", job.Type, job.To)
		return
	}
	if err := d.queue.Enqueue(ctx, job); err != nil {
		// degraded mode: operasi induk (registrasi/reset password) tetap sukses
		log.Printf("[WARN] gagal enqueue email %s ke %s: %v (operasi tetap lanjut)", job.Type, job.To, err)
	}
}

func (d *Dispatcher) DispatchWelcome(ctx context.Context, to, name string) {
	d.Dispatch(ctx, Job{Type: JobWelcome, To: to, Data: map[string]string{"name": name}})
}

func (d *Dispatcher) DispatchResetPassword(ctx context.Context, to, name, token string) {
	d.Dispatch(ctx, Job{Type: JobResetPassword, To: to, Data: map[string]string{"name": name, "token": token}})
}

func (d *Dispatcher) DispatchPasswordChanged(ctx context.Context, to, name string) {
	d.Dispatch(ctx, Job{Type: JobPasswordChanged, To: to, Data: map[string]string{"name": name}})
}
