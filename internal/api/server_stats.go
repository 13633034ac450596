package api

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// ServerStats считает время работы и нагрузку процесса для /api/server
type ServerStats struct {
	StartTime time.Time
}

// NewServerStats запоминает момент старта
func NewServerStats() *ServerStats {
	return &ServerStats{StartTime: time.Now()}
}

// GetUptime возвращает время работы сервера
func (s *ServerStats) GetUptime() string {
	uptime := time.Since(s.StartTime)

	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}

// GetMemoryUsage возвращает занятую кучу в MB
func (s *ServerStats) GetMemoryUsage() float64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.Alloc) / 1024 / 1024
}

// GetCPUUsage возвращает использование CPU процессом в процентах,
// при ошибке - системное.
func (s *ServerStats) GetCPUUsage() (float64, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		if percent, err := proc.CPUPercent(); err == nil {
			return percent, nil
		}
	}

	percents, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, fmt.Errorf("cpu: пустой результат")
	}
	return percents[0], nil
}

// Snapshot собирает сводку для ответа API
func (s *ServerStats) Snapshot() map[string]interface{} {
	cpuPercent, _ := s.GetCPUUsage()
	return map[string]interface{}{
		"name":        "ShapeBuilder",
		"status":      "running",
		"uptime":      s.GetUptime(),
		"memory_mb":   fmt.Sprintf("%.1f", s.GetMemoryUsage()),
		"cpu_percent": fmt.Sprintf("%.1f", cpuPercent),
		"goroutines":  runtime.NumGoroutine(),
	}
}
