package mailer

import (
	"context"
	"errors"
	"log"
	"time"
)

var ErrUnknownJobType = errors.New("job type tidak dikenal")

const (
	defaultMaxRetries  = 3
	defaultBackoffBase = 1 * time.Second
)

// Worker: satu loop out-of-band yang mengeksekusi job email dari antrian.
// Kebijakan delivery: at-least-once, percobaan awal + maksimal 3 retry
// dengan exponential backoff (1s, 2s, 4s). Job yang kehabisan retry
// dicatat lalu dibuang — tidak pernah dipropagasi ke request asal.
type Worker struct {
	queue  Queue
	sender Sender

	maxRetries  int
	backoffBase time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewWorker(queue Queue, sender Sender) *Worker {
	return &Worker{
		queue:       queue,
		sender:      sender,
		maxRetries:  defaultMaxRetries,
		backoffBase: defaultBackoffBase,
		sleep:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Run blocking sampai ctx selesai.
func (w *Worker) Run(ctx context.Context) {
	log.Println("📬 Mail worker jalan...")
	for {
		job, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("📪 Mail worker berhenti.")
				return
			}
			log.Printf("[ERROR] dequeue mail job: %v", err)
			if serr := w.sleep(ctx, w.backoffBase); serr != nil {
				return
			}
			continue
		}
		w.Process(ctx, job)
	}
}

// Process mengeksekusi satu job dengan kebijakan retry. Error tidak pernah
// keluar dari sini — job gagal permanen hanya dicatat.
func (w *Worker) Process(ctx context.Context, job Job) {
	subject, html, err := buildEmail(job)
	if err != nil {
		// job type tidak dikenal / payload rusak → permanent failure, tanpa retry
		log.Printf("[ERROR] mail job dibuang (permanent): %v", err)
		return
	}

	var lastErr error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := w.backoffBase << (attempt - 1) // 1s, 2s, 4s
			if serr := w.sleep(ctx, backoff); serr != nil {
				log.Printf("[WARN] mail job %s ke %s dibatalkan saat backoff", job.Type, job.To)
				return
			}
		}
		if lastErr = w.sender.Send(job.To, subject, html); lastErr == nil {
			log.Printf("📧 Email %s terkirim ke %s", job.Type, job.To)
			return
		}
		log.Printf("[WARN] kirim email %s ke %s gagal (percobaan %d): %v", job.Type, job.To, attempt+1, lastErr)
	}

	log.Printf("[ERROR] mail job %s ke %s dibuang setelah %d retry: %v", job.Type, job.To, w.maxRetries, lastErr)
}
