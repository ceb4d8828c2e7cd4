package app

import (
	"context"

	authAPI "lootbox_backend/internal/api/auth"
	casesAPI "lootbox_backend/internal/api/cases"
	fairnessAPI "lootbox_backend/internal/api/fairness"
	"lootbox_backend/internal/config"
	"lootbox_backend/internal/config/env"
	"lootbox_backend/internal/middleware"
	"lootbox_backend/internal/model"
	"lootbox_backend/internal/repository"
	"lootbox_backend/internal/repository/auth_repo"
	"lootbox_backend/internal/repository/case_repo"
	"lootbox_backend/internal/repository/player_stat_repo"
	"lootbox_backend/internal/repository/reserve_repo"
	"lootbox_backend/internal/repository/seed_repo"
	"lootbox_backend/internal/repository/spin_log_repo"
	"lootbox_backend/internal/repository/user_repo"
	"lootbox_backend/internal/service"
	"lootbox_backend/internal/service/auth"
	"lootbox_backend/internal/service/fairness"
	"lootbox_backend/internal/service/rate"
	"lootbox_backend/internal/service/risk"
	"lootbox_backend/internal/service/spin"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Auth bits
	jwtCfg   config.JWTConfig
	authRepo repository.AuthRepository
	authServ service.AuthService
	authHand *authAPI.Handler

	// User bits
	userRepo repository.UserRepository

	// Fairness bits
	seedRepo     repository.SeedRepository
	spinLogRepo  repository.SpinLogRepository
	fairnessServ service.FairnessService
	fairnessHand *fairnessAPI.Handler

	// Case/spin bits
	caseCfgs  []model.CaseConfig
	caseRepo  repository.CaseRepository
	statRepo  repository.PlayerStatRepository
	spinServ  service.SpinService
	casesHand *casesAPI.Handler

	// Risk bits
	riskCfg     config.RiskConfig
	reserveRepo repository.ReserveRepository
	riskServ    service.RiskService

	// Rate bits
	rateCfg   config.RateConfig
	rateCache *rate.Cache

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) JWTConfig() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) RiskConfig() config.RiskConfig {
	if sp.riskCfg == nil {
		cfg, err := env.NewRiskConfig()
		if err != nil {
			panic("failed to get risk config: " + err.Error())
		}
		sp.riskCfg = cfg
	}
	return sp.riskCfg
}

func (sp *ServiceProvider) RateConfig() config.RateConfig {
	if sp.rateCfg == nil {
		cfg, err := env.NewRateConfig()
		if err != nil {
			panic("failed to get rate config: " + err.Error())
		}
		sp.rateCfg = cfg
	}
	return sp.rateCfg
}

func (sp *ServiceProvider) CaseConfigs() []model.CaseConfig {
	if sp.caseCfgs == nil {
		cfgs, err := env.NewCaseConfigsFromYAML("cases.yaml")
		if err != nil {
			panic("failed to get cases config: " + err.Error())
		}
		sp.caseCfgs = cfgs
	}
	return sp.caseCfgs
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) SeedRepo(ctx context.Context) repository.SeedRepository {
	if sp.seedRepo == nil {
		sp.seedRepo = seed_repo.NewSeedRepository(sp.DBClient(ctx))
	}
	return sp.seedRepo
}

func (sp *ServiceProvider) SpinLogRepo(ctx context.Context) repository.SpinLogRepository {
	if sp.spinLogRepo == nil {
		sp.spinLogRepo = spin_log_repo.NewSpinLogRepository(sp.DBClient(ctx))
	}
	return sp.spinLogRepo
}

func (sp *ServiceProvider) PlayerStatRepo(ctx context.Context) repository.PlayerStatRepository {
	if sp.statRepo == nil {
		sp.statRepo = player_stat_repo.NewPlayerStatRepository(sp.DBClient(ctx))
	}
	return sp.statRepo
}

func (sp *ServiceProvider) ReserveRepo(ctx context.Context) repository.ReserveRepository {
	if sp.reserveRepo == nil {
		sp.reserveRepo = reserve_repo.NewReserveRepository(sp.DBClient(ctx))
	}
	return sp.reserveRepo
}

func (sp *ServiceProvider) CaseRepo() repository.CaseRepository {
	if sp.caseRepo == nil {
		sp.caseRepo = case_repo.NewCaseRepository(sp.CaseConfigs())
	}
	return sp.caseRepo
}

func (sp *ServiceProvider) RateCache() *rate.Cache {
	if sp.rateCache == nil {
		sp.rateCache = rate.NewCache(sp.RateConfig())
	}
	return sp.rateCache
}

func (sp *ServiceProvider) FairnessService(ctx context.Context) service.FairnessService {
	if sp.fairnessServ == nil {
		sp.fairnessServ = fairness.NewService(sp.SeedRepo(ctx), sp.SpinLogRepo(ctx))
	}
	return sp.fairnessServ
}

func (sp *ServiceProvider) RiskService(ctx context.Context) service.RiskService {
	if sp.riskServ == nil {
		sp.riskServ = risk.NewService(sp.ReserveRepo(ctx))
	}
	return sp.riskServ
}

func (sp *ServiceProvider) SpinService(ctx context.Context) service.SpinService {
	if sp.spinServ == nil {
		sp.spinServ = spin.NewService(
			sp.TXManager(ctx),
			sp.FairnessService(ctx),
			sp.RateCache(),
			sp.RiskService(ctx),
			sp.CaseRepo(),
			sp.PlayerStatRepo(ctx),
			sp.SpinLogRepo(ctx),
			sp.UserRepo(ctx),
		)
	}
	return sp.spinServ
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.JWTConfig(),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) CasesHandler(ctx context.Context) *casesAPI.Handler {
	if sp.casesHand == nil {
		sp.casesHand = casesAPI.NewHandler(casesAPI.HandlerDeps{Serv: sp.SpinService(ctx)})
	}
	return sp.casesHand
}

func (sp *ServiceProvider) FairnessHandler(ctx context.Context) *fairnessAPI.Handler {
	if sp.fairnessHand == nil {
		sp.fairnessHand = fairnessAPI.NewHandler(fairnessAPI.HandlerDeps{Serv: sp.FairnessService(ctx)})
	}
	return sp.fairnessHand
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
		}))

		authHand := sp.AuthHandler(ctx)
		r.Post("/auth/register", authHand.Register)
		r.Post("/auth/login", authHand.Login)
		r.Post("/auth/refresh", authHand.Refresh)
		r.Post("/auth/logout", authHand.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sp.JWTConfig()))

			casesHand := sp.CasesHandler(ctx)
			r.Get("/cases", casesHand.List)
			r.Post("/cases/open", casesHand.Open)

			fairnessHand := sp.FairnessHandler(ctx)
			r.Post("/fairness/commit", fairnessHand.Commit)
			r.Get("/fairness/reveal/{spin_log_id}", fairnessHand.Reveal)
		})

		sp.router = r
	}
	return sp.router
}
