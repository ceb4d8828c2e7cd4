package fairness

import (
	"lootbox_backend/internal/repository"
	"lootbox_backend/internal/service"
)

type serv struct {
	seedRepo    repository.SeedRepository
	spinLogRepo repository.SpinLogRepository
}

func NewService(
	seedRepo repository.SeedRepository,
	spinLogRepo repository.SpinLogRepository,
) service.FairnessService {
	return &serv{
		seedRepo:    seedRepo,
		spinLogRepo: spinLogRepo,
	}
}
