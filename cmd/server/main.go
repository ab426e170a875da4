// @title         Task backend API
// @version       1.0
// @description   Authenticated personal task management: register, login and manage tasks embedded in the user record.
// @BasePath      /
// @schemes       http
// @host          localhost:5000
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	_ "github.com/Durgatriveni/Task-backend/docs"

	// internal imports
	apihttp "github.com/Durgatriveni/Task-backend/api/http"
	"github.com/Durgatriveni/Task-backend/pkg/auth"
	"github.com/Durgatriveni/Task-backend/pkg/config"
	"github.com/Durgatriveni/Task-backend/pkg/health"
	"github.com/Durgatriveni/Task-backend/pkg/health/checkers"
	"github.com/Durgatriveni/Task-backend/pkg/logger"
	"github.com/Durgatriveni/Task-backend/pkg/repository/memory"
	mongorepo "github.com/Durgatriveni/Task-backend/pkg/repository/mongo"
	pgrepo "github.com/Durgatriveni/Task-backend/pkg/repository/postgres"
	"github.com/Durgatriveni/Task-backend/pkg/security/jwt"
	mongostore "github.com/Durgatriveni/Task-backend/pkg/storage/mongo"
	"github.com/Durgatriveni/Task-backend/pkg/storage/postgres"
	"github.com/Durgatriveni/Task-backend/pkg/task"
)

// stores bundles the repositories of the selected backend.
type stores struct {
	users   auth.UserRepository
	tasks   task.Repository
	checker health.Checker
	close   func()
}

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log := logger.New("task-backend", cfg.LogLevel)
	if cfg.InsecureSecret() {
		log.WithField("store", cfg.StoreDriver).Warn("JWT_SECRET is unset; using the development secret, tokens can be forged")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := openStores(ctx, cfg, log)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("open store")
	}
	defer st.close()

	// Token generator and verifier share the secret loaded above; nothing reads it later.
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer)
	jwtVerifier := jwt.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)

	var checks []health.Checker
	if st.checker != nil {
		checks = append(checks, st.checker)
	}

	app := apihttp.NewServer(apihttp.ServerConfig{
		CORSOrigins:    cfg.CORSOrigins,
		CookieSecure:   cfg.CookieSecure,
		PublicTaskFeed: cfg.PublicTaskFeed,
	}, apihttp.Deps{
		Auth:      auth.NewAuthService(st.users, jwtGen, cfg.BcryptCost),
		Tasks:     task.NewService(st.tasks),
		Verifier:  jwtVerifier,
		Readiness: health.NewService(checks...),
		Log:       log,
	})

	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	log.Info("server stopped")
}

func openStores(ctx context.Context, cfg config.Config, log *logrus.Entry) (stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return stores{}, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return stores{}, err
		}
		log.Info("connected to postgres")
		return stores{
			users:   pgrepo.NewUserRepository(pool),
			tasks:   pgrepo.NewTaskRepository(pool),
			checker: checkers.NewPostgresChecker(pool),
			close:   pool.Close,
		}, nil

	case config.DriverMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return stores{}, err
		}
		disconnect := func() { _ = client.Disconnect(context.Background()) }
		db := client.Database(cfg.MongoDatabase)
		users, err := mongorepo.NewUserRepository(ctx, db)
		if err != nil {
			disconnect()
			return stores{}, err
		}
		log.WithField("database", cfg.MongoDatabase).Info("connected to mongo")
		return stores{
			users:   users,
			tasks:   mongorepo.NewTaskRepository(db),
			checker: checkers.NewMongoChecker(client),
			close:   disconnect,
		}, nil

	case config.DriverMemory:
		log.Warn("using in-memory store; data is lost on restart")
		s := memory.NewStore()
		return stores{users: s, tasks: s, close: func() {}}, nil
	}
	return stores{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
