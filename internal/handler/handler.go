package handlers

import (
	"github.com/go-playground/validator/v10"

	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/logging"
	"socialfeed/internal/scheduler"
	"socialfeed/internal/service"
)

// JobLister - источник сведений о задачах планировщика для /health
type JobLister interface {
	ListJobs() []scheduler.JobInfo
}

type Handlers struct {
	SyncService      service.SyncService
	SeedService      service.SeedService
	FeedService      service.FeedService
	SchedulerService service.SchedulerService
	DB               database.MethodsDB
	Jobs             JobLister
	Cfg              *config.Config
	Logger           logging.Logger
	Validate         *validator.Validate
}

func NewHandlers(
	service *service.Service,
	db database.MethodsDB,
	jobs JobLister,
	config *config.Config,
	logger logging.Logger,
) *Handlers {
	return &Handlers{
		SyncService:      service.Sync,
		SeedService:      service.Seed,
		FeedService:      service.Feed,
		SchedulerService: service.Scheduler,
		DB:               db,
		Jobs:             jobs,
		Cfg:              config,
		Logger:           logger,
		Validate:         validator.New(),
	}
}
