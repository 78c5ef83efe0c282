package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolCreate(t *testing.T) {
	tests := []struct {
		workers int
		wantMin int
	}{
		{4, 4},
		{0, 1},
		{-3, 1},
	}
	for _, tt := range tests {
		p := NewWorkerPool(tt.workers)
		if p.Workers() < tt.wantMin {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want >= %d", tt.workers, p.Workers(), tt.wantMin)
		}
		p.Close()
	}
}

func TestWorkerPoolRunAll(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	results := make([]int, 100)
	jobs := make([]Job, len(results))
	for i := range jobs {
		i := i
		jobs[i] = func(context.Context) error {
			results[i] = i * i
			return nil
		}
	}
	if err := p.Run(context.Background(), jobs); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	for i, v := range results {
		if v != i*i {
			t.Fatalf("results[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestWorkerPoolRunFirstError(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()

	boom := errors.New("boom")
	var ran atomic.Int32
	jobs := make([]Job, 50)
	for i := range jobs {
		i := i
		jobs[i] = func(context.Context) error {
			ran.Add(1)
			if i == 3 {
				return boom
			}
			time.Sleep(time.Millisecond)
			return nil
		}
	}
	if err := p.Run(context.Background(), jobs); !errors.Is(err, boom) {
		t.Errorf("Run() = %v, want boom", err)
	}
	if ran.Load() == 0 {
		t.Error("no job ran")
	}
}

func TestWorkerPoolRunCancelled(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var ran atomic.Int32
	jobs := []Job{func(context.Context) error { ran.Add(1); return nil }}
	if err := p.Run(ctx, jobs); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	if ran.Load() != 0 {
		t.Error("job ran on a cancelled context")
	}
}

func TestWorkerPoolCloseIdempotent(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()
	p.Close()
	if err := p.Run(context.Background(), []Job{func(context.Context) error { return errors.New("x") }}); err != nil {
		t.Errorf("Run() after Close = %v, want nil", err)
	}
}
