package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"appendlist"
	"appendlist/internal/config"
	"appendlist/internal/promise"

	"github.com/VictoriaMetrics/metrics"
	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

// ErrMismatch is returned when a value read back differs from the one pushed.
var ErrMismatch = errors.New("read back mismatch")

// cancellation is checked once per this many pushes
const checkEvery = 1 << 14

type Report struct {
	Scenario       config.Scenario
	FirstChunkSize int
	Chunks         []appendlist.ChunkInfo
	Push           time.Duration
	Read           time.Duration
}

// Metrics collects counters and histograms of every scenario run.
type Metrics struct {
	set *metrics.Set
}

func NewMetrics() *Metrics {
	return &Metrics{set: metrics.NewSet()}
}

// WritePrometheus writes every collected metric in the prometheus text format.
func (m *Metrics) WritePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
}

func (m *Metrics) record(report Report) {
	if m == nil {
		return
	}

	label := fmt.Sprintf(`scenario=%q`, report.Scenario.Name)
	m.set.GetOrCreateCounter(`appendlist_pushes_total{` + label + `}`).Add(report.Scenario.Count)
	if report.Scenario.Verify {
		m.set.GetOrCreateCounter(`appendlist_reads_total{` + label + `}`).Add(report.Scenario.Count)
	}

	m.set.GetOrCreateHistogram(`appendlist_phase_duration_seconds{` + label + `,phase="push"}`).Update(report.Push.Seconds())
	m.set.GetOrCreateHistogram(`appendlist_phase_duration_seconds{` + label + `,phase="read"}`).Update(report.Read.Seconds())

	chunks := float64(len(report.Chunks))
	m.set.GetOrCreateGauge(`appendlist_chunks{`+label+`}`, func() float64 { return chunks })
}

func (m *Metrics) failed(scenario config.Scenario) {
	if m == nil {
		return
	}

	m.set.GetOrCreateCounter(fmt.Sprintf(`appendlist_failures_total{scenario=%q}`, scenario.Name)).Inc()
}

// Run fills a fresh list with scenario.Count values, keeping the pointer
// returned by every push, and, when the scenario asks for it, reads every
// index back and checks both the value and that the pushed pointer still
// refers to the stored element.
func Run(ctx context.Context, scenario config.Scenario, firstChunkSize int, m *Metrics) (Report, error) {
	var (
		report Report
		err    error
	)

	switch scenario.Kind {
	case config.KindString:
		report, err = run(ctx, scenario, firstChunkSize, strconv.Itoa)
	default:
		report, err = run(ctx, scenario, firstChunkSize, integer[int64])
	}

	if err != nil {
		m.failed(scenario)
		return report, err
	}

	m.record(report)
	return report, nil
}

func integer[N constraints.Integer](i int) N {
	return N(i)
}

func run[T comparable](ctx context.Context, scenario config.Scenario, firstChunkSize int, value func(int) T) (Report, error) {
	report := Report{Scenario: scenario, FirstChunkSize: firstChunkSize}

	list, err := appendlist.NewSized[T](firstChunkSize)
	if err != nil {
		return report, err
	}

	var refs []*T
	if scenario.Verify {
		refs = make([]*T, 0, scenario.Count)
	}

	start := time.Now()
	for i := range scenario.Count {
		if i%checkEvery == 0 && ctx.Err() != nil {
			return report, fmt.Errorf("scenario %q: %w", scenario.Name, ctx.Err())
		}

		ref := list.Push(value(i))
		if scenario.Verify {
			refs = append(refs, ref)
		}
	}
	report.Push = time.Since(start)
	report.Chunks = list.Chunks()

	if !scenario.Verify {
		return report, nil
	}

	start = time.Now()
	for i := range scenario.Count {
		if i%checkEvery == 0 && ctx.Err() != nil {
			return report, fmt.Errorf("scenario %q: %w", scenario.Name, ctx.Err())
		}

		item, ok := list.Get(i)
		switch {
		case !ok:
			return report, fmt.Errorf("scenario %q: index %d is missing: %w", scenario.Name, i, ErrMismatch)
		case *item != value(i):
			return report, fmt.Errorf("scenario %q: index %d holds %v, pushed %v: %w", scenario.Name, i, *item, value(i), ErrMismatch)
		case item != refs[i]:
			return report, fmt.Errorf("scenario %q: element %d moved after it was pushed: %w", scenario.Name, i, ErrMismatch)
		}
	}
	report.Read = time.Since(start)

	if list.Len() != scenario.Count {
		return report, fmt.Errorf("scenario %q: length %d after %d pushes: %w", scenario.Name, list.Len(), scenario.Count, ErrMismatch)
	}

	return report, nil
}

// RunAll runs at most parallelism scenarios at once, each on its own list,
// and returns the reports in scenario order along with every failure.
func RunAll(ctx context.Context, scenarios []config.Scenario, firstChunkSize, parallelism int, m *Metrics) ([]Report, error) {
	group := &errgroup.Group{}
	group.SetLimit(parallelism)

	promises := make([]*promise.Promise[Report], 0, len(scenarios))
	for _, scenario := range scenarios {
		promises = append(promises, promise.NewWithGroup(group, func() (Report, error) {
			slog.Debug("running scenario", "name", scenario.Name, "count", scenario.Count, "kind", scenario.Kind)
			report, err := Run(ctx, scenario, firstChunkSize, m)
			if err != nil {
				slog.Error("scenario failed", "name", scenario.Name, "err", err)
				return report, err
			}

			slog.Debug("scenario done", "name", scenario.Name, "chunks", len(report.Chunks), "push", report.Push, "read", report.Read)
			return report, nil
		}))
	}

	return promise.Settle(promises...)
}
