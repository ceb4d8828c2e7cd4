package risk

import (
	"lootbox_backend/internal/repository"
	"lootbox_backend/internal/service"
)

type serv struct {
	reserveRepo repository.ReserveRepository
}

func NewService(reserveRepo repository.ReserveRepository) service.RiskService {
	return &serv{
		reserveRepo: reserveRepo,
	}
}
