package service

import (
	"fmt"

	"socialfeed/internal/models"
)

// ConfigurationError - не задан ключ или переменная окружения
type ConfigurationError struct {
	Source models.Source
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("конфигурация %s не задана: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ProviderError - ошибка внешнего API, таймаут или статус вне 2xx
type ProviderError struct {
	Source models.Source
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("ошибка провайдера %s: %v", e.Source, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// StoreError - ошибка чтения или записи в БД
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("ошибка хранилища (%s): %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

type InvalidSourceError struct {
	Value string
}

func (e *InvalidSourceError) Error() string {
	return fmt.Sprintf("недопустимый источник %q: ожидается instagram или linkedin", e.Value)
}
