package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"github.com/go-json-experiment/json"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sixall/deque"
)

// Report is the result of a soak run.
type Report struct {
	Workers int              `json:"workers"`
	Ops     int64            `json:"ops"`
	PerOp   map[string]int64 `json:"per_op"`
	Checks  int64            `json:"checks"`
	Elapsed time.Duration    `json:"elapsed"`
	Start   time.Time        `json:"start"`
}

var opNames = []string{"push_back", "push_front", "pop_back", "pop_front", "insert", "delete", "shrink", "clear"}

// Run executes the scenario and writes the JSON report.
func Run(ctx context.Context, cfg *Config) error {
	m := newMetrics()
	if cfg.Metrics != "" {
		go func() {
			if err := serveMetrics(ctx, cfg.Metrics, m.collectors()); err != nil {
				slog.ErrorContext(ctx, "metrics server failed", slog.Any("err", err))
			}
		}()
	}

	start := time.Now()
	counts := make([][]int64, cfg.Workers)
	group, gctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		counts[w] = make([]int64, len(opNames))
		group.Go(func() error {
			return soak(gctx, cfg, w, counts[w], m)
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	report := Report{
		Workers: cfg.Workers,
		PerOp:   make(map[string]int64, len(opNames)),
		Elapsed: time.Since(start),
		Start:   start,
	}
	for _, c := range counts {
		for i, n := range c {
			report.PerOp[opNames[i]] += n
			report.Ops += n
		}
	}
	report.Checks = int64(cfg.Workers) * int64(cfg.Ops/cfg.CheckEvery)
	b, err := json.Marshal(&report)
	if err != nil {
		return fmt.Errorf("couldn't marshal report: %w", err)
	}
	if cfg.Report == "" {
		fmt.Println(string(b))
		return nil
	}
	if err := os.WriteFile(cfg.Report, b, 0644); err != nil {
		return fmt.Errorf("couldn't write report: %w", err)
	}
	slog.InfoContext(ctx, "soak complete",
		slog.Int64("ops", report.Ops),
		slog.Duration("elapsed", report.Elapsed),
		slog.String("report", cfg.Report),
	)
	return nil
}

// soak drives one deque against a slice model for cfg.Ops operations.
// Popped values are verified on every operation; the full contents every
// cfg.CheckEvery operations.
func soak(ctx context.Context, cfg *Config, w int, counts []int64, m *metrics) error {
	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(w)))
	d := deque.New[int64]()
	var model []int64
	weights := []float64{
		cfg.Mix.PushBack, cfg.Mix.PushFront, cfg.Mix.PopBack, cfg.Mix.PopFront,
		cfg.Mix.Insert, cfg.Mix.Delete, cfg.Mix.Shrink, cfg.Mix.Clear,
	}
	var total float64
	for _, v := range weights {
		total += v
	}
	progress := rate.NewLimiter(rate.Every(5*time.Second), 1)

	for op := range cfg.Ops {
		if op%1024 == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if progress.Allow() {
				slog.InfoContext(ctx, "soaking",
					slog.Int("worker", w),
					slog.Int("op", op),
					slog.Int("len", d.Len()),
				)
			}
		}
		kind := pick(rng, weights, total)
		// Pops and range ops need elements; fall back to a push.
		if len(model) == 0 && (kind == 2 || kind == 3 || kind == 5) {
			kind = 0
		}
		switch kind {
		case 0:
			v := rng.Int64()
			d.PushBack(v)
			model = append(model, v)
		case 1:
			v := rng.Int64()
			d.PushFront(v)
			model = slices.Insert(model, 0, v)
		case 2:
			got := d.PopBack()
			want := model[len(model)-1]
			model = model[:len(model)-1]
			if got != want {
				m.failures.Inc()
				return fmt.Errorf("worker %d op %d: PopBack returned %d, model has %d", w, op, got, want)
			}
		case 3:
			got := d.PopFront()
			want := model[0]
			model = model[1:]
			if got != want {
				m.failures.Inc()
				return fmt.Errorf("worker %d op %d: PopFront returned %d, model has %d", w, op, got, want)
			}
		case 4:
			i := rng.IntN(len(model) + 1)
			n := rng.IntN(8) + 1
			v := rng.Int64()
			d.InsertN(i, n, v)
			model = slices.Insert(model, i, slices.Repeat([]int64{v}, n)...)
		case 5:
			i := rng.IntN(len(model))
			j := i + rng.IntN(min(len(model)-i, 64)+1)
			d.Delete(i, j)
			model = slices.Delete(model, i, j)
		case 6:
			d.Shrink()
		case 7:
			d.Clear()
			model = model[:0]
		}
		counts[kind]++
		m.ops.WithLabelValues(opNames[kind]).Inc()
		if d.Len() != len(model) {
			m.failures.Inc()
			return fmt.Errorf("worker %d op %d: deque has %d elements, model has %d", w, op, d.Len(), len(model))
		}
		if (op+1)%cfg.CheckEvery == 0 {
			if err := verify(d, model); err != nil {
				m.failures.Inc()
				return fmt.Errorf("worker %d op %d: %w", w, op, err)
			}
			m.checks.Inc()
		}
	}
	if err := verify(d, model); err != nil {
		m.failures.Inc()
		return fmt.Errorf("worker %d final: %w", w, err)
	}
	return nil
}

// verify compares the deque's full contents, in both iteration orders and
// by index, against the model.
func verify(d *deque.Deque[int64], model []int64) error {
	i := 0
	for _, v := range d.All() {
		if v != model[i] {
			return fmt.Errorf("element %d: deque has %d, model has %d", i, v, model[i])
		}
		i++
	}
	if i != len(model) {
		return fmt.Errorf("iteration yielded %d elements, model has %d", i, len(model))
	}
	for j, v := range d.Backward() {
		if v != model[j] {
			return fmt.Errorf("element %d backward: deque has %d, model has %d", j, v, model[j])
		}
	}
	for _, j := range []int{0, len(model) / 2, len(model) - 1} {
		if j < 0 || j >= len(model) {
			continue
		}
		if v := d.At(j); v != model[j] {
			return fmt.Errorf("At(%d): deque has %d, model has %d", j, v, model[j])
		}
	}
	return nil
}

// pick chooses an operation index by cumulative weight.
func pick(rng *rand.Rand, weights []float64, total float64) int {
	x := rng.Float64() * total
	for i, v := range weights {
		x -= v
		if x < 0 {
			return i
		}
	}
	return 0
}
