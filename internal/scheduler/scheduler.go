package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"socialfeed/internal/logging"
)

// ErrJobRunning - задача с таким именем еще выполняется
var ErrJobRunning = errors.New("задача уже выполняется")

// Job - периодическая задача
type Job func(ctx context.Context) error

// Scheduler - запуск задач по расписанию cron. Одна задача не выполняется
// параллельно сама с собой: ни по расписанию, ни через RunNow.
type Scheduler struct {
	cron       *cron.Cron
	mu         sync.Mutex
	jobs       map[string]cron.EntryID
	running    map[string]bool
	jobTimeout time.Duration
	logger     logging.Logger
}

func New(jobTimeout time.Duration, logger logging.Logger) *Scheduler {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))

	return &Scheduler{
		cron:       c,
		jobs:       make(map[string]cron.EntryID),
		running:    make(map[string]bool),
		jobTimeout: jobTimeout,
		logger:     logger,
	}
}

// AddJob - регистрирует задачу; расписание в формате cron из пяти полей или "@hourly", "@every 30m"
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	entryID, err := s.cron.AddFunc(schedule, func() {
		err := s.run(name, job)
		switch {
		case errors.Is(err, ErrJobRunning):
			s.logger.WithField("job", name).Warn("Предыдущий запуск задачи не завершен, пропускаем")
		case err != nil:
			s.logger.WithError(err).WithField("job", name).Error("Задача планировщика завершилась с ошибкой")
		}
	})
	if err != nil {
		return fmt.Errorf("не удалось запланировать задачу %s: %w", name, err)
	}

	s.mu.Lock()
	s.jobs[name] = entryID
	s.mu.Unlock()

	s.logger.WithFields(logging.Fields{"job": name, "schedule": schedule}).Info("Задача добавлена в планировщик")
	return nil
}

func (s *Scheduler) Start() {
	s.logger.Info("Запуск планировщика")
	s.cron.Start()
}

// Stop - контекст завершается, когда закончатся уже запущенные задачи
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("Остановка планировщика")
	return s.cron.Stop()
}

// RunNow - немедленный запуск с тем же таймаутом и той же защитой от параллельного запуска
func (s *Scheduler) RunNow(name string, job Job) error {
	return s.run(name, job)
}

func (s *Scheduler) run(name string, job Job) error {
	if !s.acquire(name) {
		return ErrJobRunning
	}
	defer s.release(name)

	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	entry := s.logger.WithField("job", name)
	entry.Info("Запуск задачи")
	start := time.Now()

	if err := job(ctx); err != nil {
		return err
	}

	entry.WithField("elapsed", time.Since(start).String()).Info("Задача выполнена")
	return nil
}

func (s *Scheduler) acquire(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running[name] {
		return false
	}
	s.running[name] = true
	return true
}

func (s *Scheduler) release(name string) {
	s.mu.Lock()
	delete(s.running, name)
	s.mu.Unlock()
}

type JobInfo struct {
	Name    string    `json:"name"`
	NextRun time.Time `json:"nextRun"`
	LastRun time.Time `json:"lastRun"`
	Running bool      `json:"running"`
}

func (s *Scheduler) ListJobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	infos := make([]JobInfo, 0, len(entries))

	for name, entryID := range s.jobs {
		for _, entry := range entries {
			if entry.ID == entryID {
				infos = append(infos, JobInfo{
					Name:    name,
					NextRun: entry.Next,
					LastRun: entry.Prev,
					Running: s.running[name],
				})
				break
			}
		}
	}

	return infos
}
