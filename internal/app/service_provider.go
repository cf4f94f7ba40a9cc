package app

import (
	"context"

	authAPI "wingo_backend/internal/api/auth"
	wingoAPI "wingo_backend/internal/api/wingo"
	"wingo_backend/internal/audit"
	"wingo_backend/internal/config"
	"wingo_backend/internal/config/env"
	"wingo_backend/internal/logger"
	mw "wingo_backend/internal/middleware"
	"wingo_backend/internal/repository"
	"wingo_backend/internal/repository/auth_repo"
	"wingo_backend/internal/repository/bet_repo"
	"wingo_backend/internal/repository/override_repo"
	"wingo_backend/internal/repository/risk_cache_repo"
	"wingo_backend/internal/repository/round_repo"
	"wingo_backend/internal/repository/user_repo"
	"wingo_backend/internal/service"
	authServ "wingo_backend/internal/service/auth"
	"wingo_backend/internal/service/wingo"
	"wingo_backend/internal/sweeper"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager
	ctxGetter *trmpgx.CtxGetter

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Redis
	redisCfg    config.RedisConfig
	redisClient *redis.Client

	// Kafka
	kafkaCfg config.KafkaConfig
	auditPub *audit.KafkaPublisher

	// Логгер
	log *zap.Logger

	// Auth bits
	jwtCfg   config.JWTConfig
	authRepo repository.AuthRepository
	userRepo repository.UserRepository
	authSrv  service.AuthService
	authHand *authAPI.Handler

	// Wingo bits
	wingoCfg     config.WingoConfig
	roundRepo    repository.RoundRepository
	betRepo      repository.BetRepository
	overrideRepo repository.OverrideRepository
	riskCache    repository.RiskCacheRepository
	wingoSrv     service.WingoService
	wingoHand    *wingoAPI.Handler
	sweep        *sweeper.Sweeper

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		l, err := logger.New(envName())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.log = l
	}
	return sp.log
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

func (sp *ServiceProvider) CtxGetter() *trmpgx.CtxGetter {
	if sp.ctxGetter == nil {
		sp.ctxGetter = trmpgx.DefaultCtxGetter
	}
	return sp.ctxGetter
}

func (sp *ServiceProvider) RedisCfg() config.RedisConfig {
	if sp.redisCfg == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisCfg = cfg
	}
	return sp.redisCfg
}

func (sp *ServiceProvider) RedisClient() *redis.Client {
	if sp.redisClient == nil {
		sp.redisClient = redis.NewClient(&redis.Options{
			Addr: sp.RedisCfg().Address(),
		})
	}
	return sp.redisClient
}

func (sp *ServiceProvider) KafkaCfg() config.KafkaConfig {
	if sp.kafkaCfg == nil {
		cfg, err := env.NewKafkaConfig()
		if err != nil {
			panic("failed to get kafka config: " + err.Error())
		}
		sp.kafkaCfg = cfg
	}
	return sp.kafkaCfg
}

func (sp *ServiceProvider) AuditPublisher() *audit.KafkaPublisher {
	if sp.auditPub == nil {
		sp.auditPub = audit.NewKafkaPublisher(sp.KafkaCfg().Brokers(), sp.KafkaCfg().AuditTopic())
	}
	return sp.auditPub
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx), sp.CtxGetter())
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx), sp.CtxGetter())
	}
	return sp.userRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authSrv == nil {
		sp.authSrv = authServ.NewAuthService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.JWTCfg(),
		)
	}
	return sp.authSrv
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv:   sp.AuthService(ctx),
			Logger: sp.Logger(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) WingoCfg() config.WingoConfig {
	if sp.wingoCfg == nil {
		cfg, err := env.NewWingoConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get wingo config: " + err.Error())
		}
		sp.wingoCfg = cfg
	}
	return sp.wingoCfg
}

func (sp *ServiceProvider) RoundRepository(ctx context.Context) repository.RoundRepository {
	if sp.roundRepo == nil {
		sp.roundRepo = round_repo.NewRoundRepository(sp.DBClient(ctx), sp.CtxGetter())
	}
	return sp.roundRepo
}

func (sp *ServiceProvider) BetRepository(ctx context.Context) repository.BetRepository {
	if sp.betRepo == nil {
		sp.betRepo = bet_repo.NewBetRepository(sp.DBClient(ctx), sp.CtxGetter())
	}
	return sp.betRepo
}

func (sp *ServiceProvider) OverrideRepository(ctx context.Context) repository.OverrideRepository {
	if sp.overrideRepo == nil {
		sp.overrideRepo = override_repo.NewOverrideRepository(sp.DBClient(ctx), sp.CtxGetter())
	}
	return sp.overrideRepo
}

func (sp *ServiceProvider) RiskCacheRepository() repository.RiskCacheRepository {
	if sp.riskCache == nil {
		sp.riskCache = risk_cache_repo.NewRiskCacheRepository(sp.RedisClient())
	}
	return sp.riskCache
}

func (sp *ServiceProvider) WingoService(ctx context.Context) service.WingoService {
	if sp.wingoSrv == nil {
		sp.wingoSrv = wingo.NewWingoService(
			sp.WingoCfg(),
			sp.RedisCfg().RiskTTL(),
			sp.RoundRepository(ctx),
			sp.BetRepository(ctx),
			sp.OverrideRepository(ctx),
			sp.UserRepo(ctx),
			sp.RiskCacheRepository(),
			sp.TXManager(ctx),
			sp.AuditPublisher(),
			sp.Logger(),
		)
	}
	return sp.wingoSrv
}

func (sp *ServiceProvider) WingoHandler(ctx context.Context) *wingoAPI.Handler {
	if sp.wingoHand == nil {
		sp.wingoHand = wingoAPI.NewHandler(wingoAPI.HandlerDeps{
			Serv:   sp.WingoService(ctx),
			Logger: sp.Logger(),
		})
	}
	return sp.wingoHand
}

func (sp *ServiceProvider) Sweeper(ctx context.Context) *sweeper.Sweeper {
	if sp.sweep == nil {
		sp.sweep = sweeper.New(
			sp.WingoService(ctx),
			sp.WingoCfg().SweepInterval(),
			sp.Logger(),
		)
	}
	return sp.sweep
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

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		// Wingo endpoints
		wingoHandler := sp.WingoHandler(ctx)
		r.Route("/wingo", func(rr chi.Router) {
			rr.Get("/round", wingoHandler.GetRound)
			rr.Get("/history", wingoHandler.GetHistory)

			rr.Group(func(auth chi.Router) {
				auth.Use(mw.Auth(sp.JWTCfg()))
				auth.Post("/bet", wingoHandler.PlaceBet)

				auth.Route("/admin", func(admin chi.Router) {
					admin.Use(mw.RequireAdmin)
					admin.Get("/risk", wingoHandler.Risk)
					admin.Post("/override", wingoHandler.SetOverride)
					admin.Get("/overrides", wingoHandler.ListOverrides)
					admin.Post("/sweep", wingoHandler.Sweep)
				})
			})
		})

		sp.router = r
	}

	return sp.router
}
