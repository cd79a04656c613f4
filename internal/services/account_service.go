package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"scaffold/internal/models/db_models"
	"scaffold/internal/models/request_models"
	"scaffold/internal/models/response_models"
	"scaffold/internal/repositories"
	"scaffold/pkg/logger"
	mem "scaffold/pkg/memcache"
	"scaffold/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountResponse, error)
	SendResetEmail(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
	SendVerifyEmail(ctx context.Context, userID string) error
	VerifyEmail(ctx context.Context, sign string) error
	GetProfile(ctx context.Context, userID string) (*response_models.AccountResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	mailService IMailService
	signs       mem.SignStore
	tokens      *utils.TokenIssuer
	appURL      string
	log         logger.Logger
	now         func() time.Time
	// async runs fire-and-forget work such as the welcome mail.
	async func(func())
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	mailService IMailService,
	signs mem.SignStore,
	tokens *utils.TokenIssuer,
	appURL string,
	log logger.Logger,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		mailService: mailService,
		signs:       signs,
		tokens:      tokens,
		appURL:      strings.TrimRight(appURL, "/"),
		log:         log,
		now:         time.Now,
		async:       func(f func()) { go f() },
	}
}

func (a *AccountService) Register(ctx context.Context, request request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	existing, err := a.accountRepo.FindByName(ctx, request.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrNameAlreadyExists
	}

	existing, err = a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &db_models.Account{
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: hashedPassword,
	}
	if err := a.accountRepo.Insert(ctx, account); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	a.async(func() { a.sendWelcomeEmail(*account) })

	token, err := a.tokens.CreateToken(account.ID)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return response_models.NewAccountResponse(account, token), nil
}

func (a *AccountService) sendWelcomeEmail(account db_models.Account) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	link, err := a.signedURL(ctx, mem.SignVerify, account.Email)
	if err != nil {
		a.log.Error("sign welcome link", "email", account.Email, "err", err)
		return
	}
	if err := a.mailService.SendWelcomeEmail(account.Email, account.Name, link); err != nil {
		a.log.Error("send welcome email", "email", account.Email, "err", err)
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := a.tokens.CreateToken(account.ID)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return response_models.NewAccountResponse(account, token), nil
}

func (a *AccountService) SendResetEmail(ctx context.Context, email string) error {
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	link, err := a.signedURL(ctx, mem.SignReset, account.Email)
	if err != nil {
		return err
	}
	if err := a.mailService.SendResetEmail(account.Email, account.Name, link); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrMailDelivery, err)
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	account, err := a.accountBySign(ctx, mem.SignReset, request.Sign)
	if err != nil {
		return err
	}
	if account.Email != request.Email {
		return utils.ErrSignEmailMismatch
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	account.PasswordHash = hashedPassword
	if err := a.accountRepo.Update(ctx, account); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if err := a.signs.Delete(ctx, mem.SignReset, request.Sign); err != nil {
		a.log.Warn("consume reset sign", "err", err)
	}
	return nil
}

func (a *AccountService) SendVerifyEmail(ctx context.Context, userID string) error {
	account, err := a.accountByID(ctx, userID)
	if err != nil {
		return err
	}

	link, err := a.signedURL(ctx, mem.SignVerify, account.Email)
	if err != nil {
		return err
	}
	if err := a.mailService.SendVerifyEmail(account.Email, account.Name, link); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrMailDelivery, err)
	}
	return nil
}

func (a *AccountService) VerifyEmail(ctx context.Context, sign string) error {
	account, err := a.accountBySign(ctx, mem.SignVerify, sign)
	if err != nil {
		return err
	}

	now := a.now()
	account.EmailVerifiedAt = &now
	if err := a.accountRepo.Update(ctx, account); err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	if err := a.signs.Delete(ctx, mem.SignVerify, sign); err != nil {
		a.log.Warn("consume verify sign", "err", err)
	}
	return nil
}

func (a *AccountService) GetProfile(ctx context.Context, userID string) (*response_models.AccountResponse, error) {
	account, err := a.accountByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return response_models.NewAccountResponse(account, ""), nil
}

func (a *AccountService) accountByID(ctx context.Context, userID string) (*db_models.Account, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, utils.ErrUnauthorized
	}
	account, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrUnauthorized
	}
	return account, nil
}

func (a *AccountService) accountBySign(ctx context.Context, kind, sign string) (*db_models.Account, error) {
	email, err := a.signs.Get(ctx, kind, sign)
	if errors.Is(err, mem.ErrSignNotFound) {
		return nil, utils.ErrInvalidSign
	}
	if err != nil {
		return nil, fmt.Errorf("read sign: %w", err)
	}

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrInvalidSign
	}
	return account, nil
}

// signedURL stores a fresh sign for email and returns the link the user
// follows: /password/reset?email=..&sign=.. or /verification?sign=..
func (a *AccountService) signedURL(ctx context.Context, kind, email string) (string, error) {
	sign, err := utils.GenerateSign(email)
	if err != nil {
		return "", fmt.Errorf("generate sign: %w", err)
	}

	values := url.Values{}
	var path string
	switch kind {
	case mem.SignReset:
		path = "/password/reset"
		values.Set("email", email)
	case mem.SignVerify:
		path = "/verification"
	default:
		return "", fmt.Errorf("unknown sign kind %q", kind)
	}
	values.Set("sign", sign)

	if err := a.signs.Set(ctx, kind, sign, email, mem.SignTTL); err != nil {
		return "", fmt.Errorf("store sign: %w", err)
	}
	return a.appURL + path + "?" + values.Encode(), nil
}
