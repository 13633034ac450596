package logging

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

// LoggerManager выдаёт файловые логгеры компонентов (api, storage) с общими уровнями
type LoggerManager struct {
	mu      sync.Mutex
	loggers map[string]*Logger

	console, file LogLevel
}

var (
	globalManager *LoggerManager
	managerOnce   sync.Once
)

func newLoggerManager() *LoggerManager {
	return &LoggerManager{
		loggers: make(map[string]*Logger),
		console: INFO,
		file:    DEBUG,
	}
}

// GetLoggerManager возвращает глобальный менеджер логгеров
func GetLoggerManager() *LoggerManager {
	managerOnce.Do(func() { globalManager = newLoggerManager() })
	return globalManager
}

// SetLevels задаёт уровни уже созданным и всем будущим логгерам компонентов
func (lm *LoggerManager) SetLevels(console, file LogLevel) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.console, lm.file = console, file
	for _, l := range lm.loggers {
		l.SetLevels(console, file)
	}
}

// GetLogger возвращает логгер компонента, создавая файл в LogDir при первом обращении
func (lm *LoggerManager) GetLogger(component string) (*Logger, error) {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	if l, ok := lm.loggers[component]; ok {
		return l, nil
	}
	l, err := NewLogger(component)
	if err != nil {
		return nil, fmt.Errorf("logger %s: %w", component, err)
	}
	l.SetLevels(lm.console, lm.file)
	lm.loggers[component] = l
	return l, nil
}

// MustGetLogger при ошибке файловой системы возвращает логгер в stdout
func (lm *LoggerManager) MustGetLogger(component string) *Logger {
	l, err := lm.GetLogger(component)
	if err != nil {
		lm.mu.Lock()
		level := lm.console
		lm.mu.Unlock()
		return NewWriterLogger(component, os.Stdout, level)
	}
	return l
}

// CloseAll закрывает файлы всех логгеров; следующий GetLogger откроет новый файл
func (lm *LoggerManager) CloseAll() error {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	var errs []error
	for component, l := range lm.loggers {
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("logger %s: %w", component, err))
		}
	}
	clear(lm.loggers)
	return errors.Join(errs...)
}

func GetAPILogger() *Logger { return GetLoggerManager().MustGetLogger("api") }

func GetStorageLogger() *Logger { return GetLoggerManager().MustGetLogger("storage") }
