package spin

import (
	"lootbox_backend/internal/repository"
	"lootbox_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	txManager   trm.Manager
	fairness    service.FairnessService
	rates       service.RateService
	risk        service.RiskService
	caseRepo    repository.CaseRepository
	statRepo    repository.PlayerStatRepository
	spinLogRepo repository.SpinLogRepository
	userRepo    repository.UserRepository
}

func NewService(
	txManager trm.Manager,
	fairness service.FairnessService,
	rates service.RateService,
	risk service.RiskService,
	caseRepo repository.CaseRepository,
	statRepo repository.PlayerStatRepository,
	spinLogRepo repository.SpinLogRepository,
	userRepo repository.UserRepository,
) service.SpinService {
	return &serv{
		txManager:   txManager,
		fairness:    fairness,
		rates:       rates,
		risk:        risk,
		caseRepo:    caseRepo,
		statRepo:    statRepo,
		spinLogRepo: spinLogRepo,
		userRepo:    userRepo,
	}
}
