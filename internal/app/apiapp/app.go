package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Rudio1/api-meals/internal/config"
	"github.com/Rudio1/api-meals/internal/repo/memory"
	pgrepo "github.com/Rudio1/api-meals/internal/repo/postgres"
	redrepo "github.com/Rudio1/api-meals/internal/repo/redis"
	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
	"github.com/Rudio1/api-meals/internal/services/content"
	"github.com/Rudio1/api-meals/internal/transport/http/handlers"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	memory     *memory.Store
	httpRouter http.Handler
}

// stores is the set of repositories one storage driver provides.
type stores struct {
	accounts  authsvc.AccountStore
	sessions  authsvc.SessionStore
	posts     content.PostStore
	comments  content.CommentStore
	replies   content.ReplyStore
	meals     content.MealStore
	mealTypes content.MealTypeStore
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &App{cfg: cfg, logger: log}
	checks := make(map[string]handlers.Check)

	var st stores
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pool, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		app.postgres = pool
		if cfg.Postgres.AutoMigrate {
			if err := pgrepo.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate postgres: %w", err)
			}
			log.Info("postgres migrations applied")
		}
		checks["postgres"] = pool.Ping

		st = stores{
			accounts:  pgrepo.NewAccountRepo(pool),
			sessions:  pgrepo.NewSessionRepo(pool),
			posts:     pgrepo.NewPostRepo(pool),
			comments:  pgrepo.NewCommentRepo(pool, pool),
			replies:   pgrepo.NewReplyRepo(pool),
			meals:     pgrepo.NewMealRepo(pool),
			mealTypes: pgrepo.NewMealTypeRepo(pool, pool),
		}
	case config.StorageDriverMemory:
		app.memory = memory.NewStore()
		st = stores{
			accounts:  app.memory.Accounts(),
			sessions:  app.memory.Sessions(),
			posts:     app.memory.Posts(),
			comments:  app.memory.Comments(),
			replies:   app.memory.Replies(),
			meals:     app.memory.Meals(),
			mealTypes: app.memory.MealTypes(),
		}
		log.Warn("memory storage driver in use, data is lost on restart")
	}

	if cfg.Storage.SessionBackend == config.SessionBackendRedis {
		app.redis = redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redrepo.Ping(ctx, app.redis); err != nil {
			log.Warn("redis ping failed, sessions unavailable until it recovers", zap.Error(err))
		}
		client := app.redis
		checks["redis"] = func(ctx context.Context) error { return redrepo.Ping(ctx, client) }
		st.sessions = redrepo.NewSessionRepo(app.redis)
	}

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL, cfg.Auth.JWTRefreshTTL)
	authService := authsvc.NewService(jwtManager, st.accounts, st.sessions)

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)
	RegisterRoutes(r, Dependencies{
		AuthService:    authService,
		PostService:    content.NewPostService(st.posts),
		CommentService: content.NewCommentService(st.comments, st.posts),
		ReplyService:   content.NewReplyService(st.replies),
		MealService:    content.NewMealService(st.meals, st.mealTypes),
		HealthChecks:   checks,
		APIKey:         cfg.Auth.APIKey,
		Verbose:        cfg.IsDev(),
		Logger:         log,
	})

	app.httpRouter = r
	app.server = &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return app, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started",
		zap.String("addr", a.cfg.HTTP.Addr),
		zap.String("storage", a.cfg.Storage.Driver),
		zap.String("sessions", a.cfg.Storage.SessionBackend),
	)
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}

// MemoryStore is non-nil only with the memory storage driver.
func (a *App) MemoryStore() *memory.Store {
	return a.memory
}
