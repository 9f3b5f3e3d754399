package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger - общий логгер компонентов
type Logger = *logrus.Logger

// Fields - поля структурированного лога
type Fields = logrus.Fields

// NewLogger - JSON-логгер с заданным уровнем, по умолчанию info
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}

// NewLoggerWithService - добавляет поле service в каждую запись
func NewLoggerWithService(serviceName, level string) *logrus.Logger {
	logger := NewLogger(level)
	logger.AddHook(serviceHook{service: serviceName})
	return logger
}

// NewNop - логгер без вывода для тестов
func NewNop() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type serviceHook struct {
	service string
}

func (h serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h serviceHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["service"]; !ok {
		entry.Data["service"] = h.service
	}
	return nil
}
