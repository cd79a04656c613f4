package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"scaffold/internal/config"
	"scaffold/internal/repositories"
	"scaffold/internal/services"
	"scaffold/pkg/logger"
	mem "scaffold/pkg/memcache"
	"scaffold/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideTokenIssuer)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideTokenIssuer(cfg *config.Config) (*utils.TokenIssuer, error) {
	return utils.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	mailService services.IMailService,
	signs mem.SignStore,
	tokens *utils.TokenIssuer,
	cfg *config.Config,
	log logger.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, mailService, signs, tokens, cfg.App.URL, log)
}
