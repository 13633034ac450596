// Package metrics содержит Prometheus-метрики построения фигур.
package metrics

import (
	"time"

	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world"
	"github.com/annel0/shapebuilder/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shapebuilder"

// BuildMetrics собирает статистику сэмплирования, сжатия и вызовов Mutator.
//
// Метрики:
// * shapes_built_total{shape,policy} - counter
// * coordinates_total{shape} - counter
// * boxes_total{shape} - counter
// * build_duration_seconds{shape} - histogram
// * mutator_calls_total{kind} - counter (place/fill)
// * mutator_blocks_total - counter, блоков записано через Mutator
type BuildMetrics struct {
	shapesBuilt   *prometheus.CounterVec
	coordinates   *prometheus.CounterVec
	boxes         *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	mutatorCalls  *prometheus.CounterVec
	mutatorBlocks prometheus.Counter
}

// New создаёт метрики и регистрирует их в reg. reg == nil означает дефолтный регистр.
func New(reg prometheus.Registerer) *BuildMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &BuildMetrics{
		shapesBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shapes_built_total",
			Help:      "Число построенных фигур.",
		}, []string{"shape", "policy"}),
		coordinates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coordinates_total",
			Help:      "Координат, выданных сэмплерами (по всем проходам).",
		}, []string{"shape"}),
		boxes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boxes_total",
			Help:      "Боксов, полученных после сжатия.",
		}, []string{"shape"}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Длительность построения фигуры.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"shape"}),
		mutatorCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutator_calls_total",
			Help:      "Вызовов Mutator по видам.",
		}, []string{"kind"}),
		mutatorBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutator_blocks_total",
			Help:      "Блоков, записанных через Mutator.",
		}),
	}

	reg.MustRegister(m.shapesBuilt, m.coordinates, m.boxes, m.buildDuration, m.mutatorCalls, m.mutatorBlocks)
	return m
}

// ObserveBuild учитывает одно завершённое построение
func (m *BuildMetrics) ObserveBuild(shape, policy string, coordinates, boxes int, took time.Duration) {
	if m == nil {
		return
	}
	m.shapesBuilt.WithLabelValues(shape, policy).Inc()
	m.coordinates.WithLabelValues(shape).Add(float64(coordinates))
	m.boxes.WithLabelValues(shape).Add(float64(boxes))
	m.buildDuration.WithLabelValues(shape).Observe(took.Seconds())
}

// Mutator оборачивает next и считает его вызовы
func (m *BuildMetrics) Mutator(next world.Mutator) world.Mutator {
	if m == nil {
		return next
	}
	return &countingMutator{next: next, m: m}
}

type countingMutator struct {
	next world.Mutator
	m    *BuildMetrics
}

func (c *countingMutator) PlaceBlock(id block.BlockID, pos vec.Vec3) {
	c.m.mutatorCalls.WithLabelValues("place").Inc()
	c.m.mutatorBlocks.Inc()
	c.next.PlaceBlock(id, pos)
}

func (c *countingMutator) FillBox(id block.BlockID, box world.Box) {
	c.m.mutatorCalls.WithLabelValues("fill").Inc()
	c.m.mutatorBlocks.Add(float64(box.Volume()))
	c.next.FillBox(id, box)
}
