package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"scaffold/cmd/fx/account_fx"
	"scaffold/cmd/fx/config_fx"
	"scaffold/cmd/fx/controllers_fx"
	"scaffold/cmd/fx/db_fx"
	"scaffold/cmd/fx/mail_fx"
	"scaffold/cmd/fx/memcache_fx"
	"scaffold/internal/api"
	"scaffold/internal/api/controllers"
	"scaffold/internal/config"
	"scaffold/pkg/logger"
	"scaffold/pkg/utils"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func ProvideRouter(
	cfg *config.Config,
	accountController *controllers.AccountController,
	issuer *utils.TokenIssuer,
	log logger.Logger) *gin.Engine {

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	return api.NewRouter(accountController, issuer, log)
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log logger.Logger) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server failed", "err", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
