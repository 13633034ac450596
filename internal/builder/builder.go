// Package builder связывает сэмплеры фигур, Dispatcher и Mutator в один конвейер:
// фигура раскладывается на проходы, каждый проход сжимается в боксы и
// отправляется в мир.
package builder

import (
	"context"
	"errors"
	"time"

	"github.com/annel0/shapebuilder/internal/compact"
	"github.com/annel0/shapebuilder/internal/dispatch"
	"github.com/annel0/shapebuilder/internal/logging"
	"github.com/annel0/shapebuilder/internal/metrics"
	"github.com/annel0/shapebuilder/internal/progress"
	"github.com/annel0/shapebuilder/internal/shape"
	"github.com/annel0/shapebuilder/internal/world"
	"github.com/annel0/shapebuilder/internal/world/block"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoShape возвращается Build, если фигура не задана
var ErrNoShape = errors.New("shape spec is nil")

// PassResult - статистика одного прохода
type PassResult struct {
	Role        string        `json:"role"`
	Block       block.BlockID `json:"block"`
	Coordinates int           `json:"coordinates"`
	Boxes       int           `json:"boxes"`
	Placed      int           `json:"placed"`
}

// Result - итог построения одной фигуры
type Result struct {
	JobID       string        `json:"job_id"`
	Shape       string        `json:"shape"`
	Policy      string        `json:"policy"`
	Coordinates int           `json:"coordinates"`
	Boxes       int           `json:"boxes"`
	Passes      []PassResult  `json:"passes"`
	Duration    time.Duration `json:"duration_ns"`
}

// Builder выполняет построения последовательно, вызовы Build не должны пересекаться
type Builder struct {
	mutator   world.Mutator
	reporter  progress.Reporter
	chunkSize int
	metrics   *metrics.BuildMetrics
	tracer    trace.Tracer
}

// Option настраивает Builder
type Option func(*Builder)

// WithReporter задаёт приёмник сообщений о прогрессе
func WithReporter(r progress.Reporter) Option {
	return func(b *Builder) { b.reporter = r }
}

// WithChunkSize задаёт размер куска Dispatcher
func WithChunkSize(n int) Option {
	return func(b *Builder) { b.chunkSize = n }
}

// WithMetrics включает Prometheus-метрики
func WithMetrics(m *metrics.BuildMetrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// New создаёт Builder поверх Mutator
func New(m world.Mutator, opts ...Option) *Builder {
	b := &Builder{
		mutator:   m,
		reporter:  progress.Nop,
		chunkSize: dispatch.DefaultChunkSize,
		tracer:    otel.Tracer("shapebuilder/builder"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build строит фигуру spec блоком material по политике policy.
// При PolicyHollow весь объём сначала заполняется AirBlockID, затем ставится оболочка.
func (b *Builder) Build(ctx context.Context, spec shape.Spec, policy shape.Policy, material block.BlockID) (Result, error) {
	if spec == nil {
		return Result{}, ErrNoShape
	}

	start := time.Now()
	res := Result{
		JobID:  uuid.New().String(),
		Shape:  spec.Kind().String(),
		Policy: policy.String(),
	}
	if spec.Kind().IsCurve() {
		res.Policy = shape.PolicySolid.String()
	}

	_, span := b.tracer.Start(ctx, "builder.Build", trace.WithAttributes(
		attribute.String("job.id", res.JobID),
		attribute.String("shape.kind", res.Shape),
		attribute.String("shape.policy", res.Policy),
		attribute.Int("block.id", int(material)),
	))
	defer span.End()

	d := dispatch.New(compact.New(b.metrics.Mutator(b.mutator)), b.reporter, b.chunkSize)
	for _, pass := range shape.Sample(spec, policy) {
		id := material
		if pass.Role == shape.RoleClear {
			id = block.AirBlockID
		}

		stats := d.Dispatch(pass.Coords, id)
		res.Passes = append(res.Passes, PassResult{
			Role:        pass.Role.String(),
			Block:       id,
			Coordinates: stats.Coordinates,
			Boxes:       stats.Boxes,
			Placed:      stats.Placed,
		})
		res.Coordinates += stats.Coordinates
		res.Boxes += stats.Boxes
	}
	res.Duration = time.Since(start)

	span.SetAttributes(
		attribute.Int("build.coordinates", res.Coordinates),
		attribute.Int("build.boxes", res.Boxes),
	)
	b.metrics.ObserveBuild(res.Shape, res.Policy, res.Coordinates, res.Boxes, res.Duration)
	logging.LogBuild(res.JobID, res.Shape, res.Policy, res.Coordinates, res.Boxes, res.Duration)

	if res.Coordinates == 0 {
		logging.Warn("Build %s: фигура %s не дала ни одной координаты", res.JobID, res.Shape)
	}
	return res, nil
}
