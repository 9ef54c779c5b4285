package usecase

import (
	"time"

	"github.com/piresc/swastha/services/workers"
)

type WorkerUC struct {
	workerRepo workers.WorkerRepo
	nowF       func() time.Time
}

// NewWorkerUC creates a new worker usecase instance
func NewWorkerUC(workerRepo workers.WorkerRepo) *WorkerUC {
	return &WorkerUC{
		workerRepo: workerRepo,
		nowF:       time.Now,
	}
}
