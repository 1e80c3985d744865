package worker

import (
	"context"
)

// Worker интерфейс для всех фоновых задач шлюза
type Worker interface {
	// Start запускает воркер и блокирует до остановки
	Start(ctx context.Context) error

	// Stop останавливает воркер
	Stop() error

	// Name возвращает имя воркера
	Name() string
}

// Task - одна итерация периодического воркера
type Task func(ctx context.Context) error
