package services

import (
	"context"
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scaffold/internal/models/db_models"
	"scaffold/internal/models/request_models"
	"scaffold/pkg/logger"
	mem "scaffold/pkg/memcache"
	"scaffold/pkg/utils"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Insert(ctx context.Context, account *db_models.Account) error {
	args := m.Called(ctx, account)
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *db_models.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) FindById(ctx context.Context, id string) (*db_models.Account, error) {
	args := m.Called(ctx, id)
	return accountArg(args)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*db_models.Account, error) {
	args := m.Called(ctx, email)
	return accountArg(args)
}

func (m *MockAccountRepository) FindByName(ctx context.Context, name string) (*db_models.Account, error) {
	args := m.Called(ctx, name)
	return accountArg(args)
}

func accountArg(args mock.Arguments) (*db_models.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*db_models.Account), args.Error(1)
}

type MockMailService struct {
	mock.Mock
}

func (m *MockMailService) SendWelcomeEmail(to, name, link string) error {
	return m.Called(to, name, link).Error(0)
}

func (m *MockMailService) SendVerifyEmail(to, name, link string) error {
	return m.Called(to, name, link).Error(0)
}

func (m *MockMailService) SendResetEmail(to, name, link string) error {
	return m.Called(to, name, link).Error(0)
}

type fixture struct {
	repo   *MockAccountRepository
	mail   *MockMailService
	signs  *mem.MemorySignStore
	tokens *utils.TokenIssuer
	svc    *AccountService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := utils.NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)

	f := &fixture{
		repo:   &MockAccountRepository{},
		mail:   &MockMailService{},
		signs:  mem.NewMemorySignStore(),
		tokens: tokens,
	}
	f.svc = NewAccountService(f.repo, f.mail, f.signs, tokens, "http://app.test/",
		logger.New(logger.Config{Output: io.Discard}))
	f.svc.async = func(fn func()) { fn() }
	return f
}

func existingAccount(t *testing.T, password string) *db_models.Account {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &db_models.Account{
		BaseModel:    db_models.BaseModel{ID: uuid.New()},
		Name:         "validuser",
		Email:        "a@b.com",
		PasswordHash: hash,
	}
}

func signUp() request_models.SignUpRequest {
	return request_models.SignUpRequest{Name: "validuser", Email: "a@b.com", Password: "secret1", Repassword: "secret1"}
}

func TestRegister_CreatesAccountAndSendsWelcome(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.repo.On("FindByName", ctx, "validuser").Return(nil, nil)
	f.repo.On("FindByEmail", ctx, "a@b.com").Return(nil, nil)
	f.repo.On("Insert", ctx, mock.MatchedBy(func(a *db_models.Account) bool {
		return a.Name == "validuser" && utils.ComparePasswords(a.PasswordHash, "secret1") == nil
	})).Return(nil)

	var link string
	f.mail.On("SendWelcomeEmail", "a@b.com", "validuser", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { link = args.String(2) }).Return(nil)

	resp, err := f.svc.Register(ctx, signUp())
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", resp.Email)

	claims, err := f.tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, claims.UserID)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/verification", u.Path)
	email, err := f.signs.Get(ctx, mem.SignVerify, u.Query().Get("sign"))
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)

	f.repo.AssertExpectations(t)
	f.mail.AssertExpectations(t)
}

func TestRegister_Conflicts(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	f.repo.On("FindByName", ctx, "validuser").Return(&db_models.Account{}, nil)
	_, err := f.svc.Register(ctx, signUp())
	assert.ErrorIs(t, err, utils.ErrNameAlreadyExists)

	f = newFixture(t)
	f.repo.On("FindByName", ctx, "validuser").Return(nil, nil)
	f.repo.On("FindByEmail", ctx, "a@b.com").Return(&db_models.Account{}, nil)
	_, err = f.svc.Register(ctx, signUp())
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	f = newFixture(t)
	f.repo.On("FindByName", ctx, "validuser").Return(nil, errors.New("conn reset"))
	_, err = f.svc.Register(ctx, signUp())
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	account := existingAccount(t, "secret1")
	f.repo.On("FindByEmail", ctx, "a@b.com").Return(account, nil)
	f.repo.On("FindByEmail", ctx, "x@b.com").Return(nil, nil)

	resp, err := f.svc.Login(ctx, request_models.LoginRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = f.svc.Login(ctx, request_models.LoginRequest{Email: "a@b.com", Password: "wrong11"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, request_models.LoginRequest{Email: "x@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestResetFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	account := existingAccount(t, "oldpass")
	f.repo.On("FindByEmail", ctx, "a@b.com").Return(account, nil)
	f.repo.On("Update", ctx, account).Return(nil)

	var link string
	f.mail.On("SendResetEmail", "a@b.com", "validuser", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { link = args.String(2) }).Return(nil)

	require.NoError(t, f.svc.SendResetEmail(ctx, "a@b.com"))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "/password/reset", u.Path)
	q := u.Query()
	assert.Equal(t, "a@b.com", q.Get("email"))

	req := request_models.ResetPasswordRequest{Email: "a@b.com", Sign: q.Get("sign"), Password: "newpass", Repassword: "newpass"}
	require.NoError(t, f.svc.ResetPassword(ctx, req))
	assert.NoError(t, utils.ComparePasswords(account.PasswordHash, "newpass"))

	assert.ErrorIs(t, f.svc.ResetPassword(ctx, req), utils.ErrInvalidSign, "signs are single use")
}

func TestResetPassword_EmailMismatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	account := existingAccount(t, "oldpass")
	f.repo.On("FindByEmail", ctx, "a@b.com").Return(account, nil)
	require.NoError(t, f.signs.Set(ctx, mem.SignReset, "s1", "a@b.com", time.Minute))

	err := f.svc.ResetPassword(ctx, request_models.ResetPasswordRequest{Email: "other@b.com", Sign: "s1", Password: "newpass", Repassword: "newpass"})
	assert.ErrorIs(t, err, utils.ErrSignEmailMismatch)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSendResetEmail_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.repo.On("FindByEmail", ctx, "x@b.com").Return(nil, nil)
	assert.ErrorIs(t, f.svc.SendResetEmail(ctx, "x@b.com"), utils.ErrAccountNotFound)

	f = newFixture(t)
	f.repo.On("FindByEmail", ctx, "a@b.com").Return(existingAccount(t, "secret1"), nil)
	f.mail.On("SendResetEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	assert.ErrorIs(t, f.svc.SendResetEmail(ctx, "a@b.com"), utils.ErrMailDelivery)
}

func TestVerifyEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f.svc.now = func() time.Time { return fixed }

	account := existingAccount(t, "secret1")
	f.repo.On("FindById", ctx, account.ID.String()).Return(account, nil)
	f.repo.On("FindByEmail", ctx, "a@b.com").Return(account, nil)
	f.repo.On("Update", ctx, account).Return(nil)

	var link string
	f.mail.On("SendVerifyEmail", "a@b.com", "validuser", mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { link = args.String(2) }).Return(nil)

	require.NoError(t, f.svc.SendVerifyEmail(ctx, account.ID.String()))
	u, err := url.Parse(link)
	require.NoError(t, err)

	require.NoError(t, f.svc.VerifyEmail(ctx, u.Query().Get("sign")))
	require.NotNil(t, account.EmailVerifiedAt)
	assert.Equal(t, fixed, *account.EmailVerifiedAt)

	assert.ErrorIs(t, f.svc.VerifyEmail(ctx, "unknown"), utils.ErrInvalidSign)
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	account := existingAccount(t, "secret1")
	f.repo.On("FindById", ctx, account.ID.String()).Return(account, nil)

	resp, err := f.svc.GetProfile(ctx, account.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "validuser", resp.Name)
	assert.Empty(t, resp.Token)

	_, err = f.svc.GetProfile(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}
