package app

import (
	"context"
	"log"
	"net/http"

	"lootbox_backend/internal/config"
	"lootbox_backend/internal/model"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

// bootstrap - подготавливает состояние перед приёмом трафика:
// резервный пул и фоновое обновление курсов монет
func (s *App) bootstrap(ctx context.Context) error {
	riskCfg := s.ServiceProvider.RiskConfig()
	pool := model.CapPool{
		Balance:     riskCfg.InitialBalance(),
		SigmaBuffer: riskCfg.SigmaBuffer(),
		MaxPayout:   riskCfg.MaxPayout(),
	}
	err := s.ServiceProvider.ReserveRepo(ctx).EnsurePool(ctx, &pool)
	if err != nil {
		return err
	}

	go s.ServiceProvider.RateCache().Run(ctx, collectCoinIDs(s.ServiceProvider.CaseConfigs()))

	return nil
}

// collectCoinIDs - все монеты, встречающиеся в наградах кейсов, без дублей
func collectCoinIDs(configs []model.CaseConfig) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, cfg := range configs {
		for _, tier := range cfg.Tiers {
			for _, reward := range tier.Rewards {
				if _, ok := seen[reward.CoinID]; ok {
					continue
				}
				seen[reward.CoinID] = struct{}{}
				ids = append(ids, reward.CoinID)
			}
		}
	}
	return ids
}

func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()

	ctx := context.Background()

	err = s.bootstrap(ctx)
	if err != nil {
		return err
	}

	r := s.ServiceProvider.Router(ctx)

	log.Printf("starting server at %s", s.ServiceProvider.HTTPCfg().Address())
	err = http.ListenAndServe(s.ServiceProvider.HTTPCfg().Address(), r)
	if err != nil {
		return err
	}
	return err
}
