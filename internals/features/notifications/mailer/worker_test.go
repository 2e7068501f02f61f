package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeSender gagal N kali pertama lalu sukses.
type fakeSender struct {
	failFirst int
	calls     int
}

func (f *fakeSender) Send(to, subject, html string) error {
	f.calls++
	if f.calls <= f.failFirst {
		return errors.New("smtp: connection refused")
	}
	return nil
}

// fakeQueue untuk Dispatcher; Enqueue bisa dipaksa gagal.
type fakeQueue struct {
	jobs       []Job
	enqueueErr error
}

func (q *fakeQueue) Enqueue(ctx context.Context, job Job) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) Dequeue(ctx context.Context) (Job, error) {
	if len(q.jobs) == 0 {
		<-ctx.Done()
		return Job{}, ctx.Err()
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, nil
}

func newTestWorker(sender Sender) (*Worker, *[]time.Duration) {
	var slept []time.Duration
	w := NewWorker(&fakeQueue{}, sender)
	w.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return w, &slept
}

func TestProcess_SucceedsAfterRetries(t *testing.T) {
	sender := &fakeSender{failFirst: 2}
	w, slept := newTestWorker(sender)

	w.Process(context.Background(), Job{Type: JobWelcome, To: "a@b.id", Data: map[string]string{"name": "Ani"}})

	require.Equal(t, 3, sender.calls)
	require.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *slept)
}

func TestProcess_DropsAfterMaxRetries(t *testing.T) {
	sender := &fakeSender{failFirst: 100}
	w, slept := newTestWorker(sender)

	w.Process(context.Background(), Job{Type: JobWelcome, To: "a@b.id", Data: map[string]string{"name": "Ani"}})

	// percobaan awal + 3 retry, backoff 1s/2s/4s
	require.Equal(t, 4, sender.calls)
	require.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}, *slept)
}

func TestProcess_UnknownJobTypeNoRetry(t *testing.T) {
	sender := &fakeSender{}
	w, slept := newTestWorker(sender)

	w.Process(context.Background(), Job{Type: "push_notification", To: "a@b.id"})

	require.Equal(t, 0, sender.calls)
	require.Empty(t, *slept)
}

func TestProcess_ResetPasswordNeedsToken(t *testing.T) {
	sender := &fakeSender{}
	w, _ := newTestWorker(sender)

	// payload rusak → permanent failure, tidak dikirim
	w.Process(context.Background(), Job{Type: JobResetPassword, To: "a@b.id", Data: map[string]string{"name": "Ani"}})
	require.Equal(t, 0, sender.calls)
}

func TestDispatcher_EnqueueFailureIsSwallowed(t *testing.T) {
	q := &fakeQueue{enqueueErr: errors.New("redis down")}
	d := NewDispatcher(q)

	// tidak panic dan tidak mengembalikan error ke pemanggil
	d.DispatchWelcome(context.Background(), "a@b.id", "Ani")
	require.Empty(t, q.jobs)
}

func TestDispatcher_NilSafe(t *testing.T) {
	var d *Dispatcher
	d.DispatchWelcome(context.Background(), "a@b.id", "Ani")
}

func TestJobRoundTrip(t *testing.T) {
	job := Job{Type: JobResetPassword, To: "a@b.id", Data: map[string]string{"name": "Ani", "token": "abc123"}}
	raw, err := job.Marshal()
	require.NoError(t, err)

	got, err := UnmarshalJob(raw)
	require.NoError(t, err)
	require.Equal(t, job, got)
}
