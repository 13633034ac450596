package progress

import (
	"fmt"
	"time"

	"github.com/annel0/shapebuilder/internal/logging"
	"github.com/nats-io/nats.go"
)

// DefaultSubject - тема NATS для сообщений о прогрессе
const DefaultSubject = "shapebuilder.progress"

// NATSReporter публикует сообщения о прогрессе в тему NATS.
// Ошибки публикации только логируются.
type NATSReporter struct {
	conn    *nats.Conn
	subject string
}

// NewNATSReporter подключается к NATS по url
func NewNATSReporter(url, subject string) (*NATSReporter, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	nc, err := nats.Connect(url,
		nats.Name("shapebuilder-progress"),
		nats.Timeout(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect %s: %w", url, err)
	}
	logging.Info("📡 Прогресс публикуется в NATS %s, тема %s", url, subject)
	return &NATSReporter{conn: nc, subject: subject}, nil
}

func (r *NATSReporter) Report(message string) {
	if err := r.conn.Publish(r.subject, []byte(message)); err != nil {
		logging.Warn("NATSReporter publish error: %v", err)
	}
}

// Close сбрасывает буфер и закрывает соединение
func (r *NATSReporter) Close() error {
	if err := r.conn.Flush(); err != nil {
		logging.Warn("NATSReporter flush error: %v", err)
	}
	r.conn.Close()
	return nil
}
