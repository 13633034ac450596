// Package progress - приёмники сообщений о ходе построения.
// Сообщения носят справочный характер и никогда не влияют на результат.
package progress

import (
	"sync"

	"github.com/annel0/shapebuilder/internal/logging"
)

// Reporter принимает человекочитаемые сообщения о прогрессе
type Reporter interface {
	Report(message string)
}

// ReporterFunc адаптирует функцию к Reporter
type ReporterFunc func(message string)

func (f ReporterFunc) Report(message string) { f(message) }

// Nop отбрасывает сообщения
var Nop Reporter = ReporterFunc(func(string) {})

// LogReporter пишет сообщения в глобальный логгер уровнем INFO
type LogReporter struct{}

func (LogReporter) Report(message string) {
	logging.Info("📦 %s", message)
}

// Multi рассылает сообщения нескольким приёмникам
func Multi(reporters ...Reporter) Reporter {
	list := make([]Reporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			list = append(list, r)
		}
	}
	return ReporterFunc(func(message string) {
		for _, r := range list {
			r.Report(message)
		}
	})
}

// Collector запоминает сообщения, удобно для тестов и ответов API
type Collector struct {
	mu       sync.Mutex
	messages []string
}

func (c *Collector) Report(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
}

// Messages возвращает копию накопленных сообщений
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}
