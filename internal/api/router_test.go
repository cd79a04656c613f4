package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scaffold/internal/api/controllers"
	"scaffold/internal/apiclient"
	"scaffold/internal/models/db_models"
	"scaffold/internal/screens"
	"scaffold/internal/services"
	"scaffold/pkg/logger"
	mem "scaffold/pkg/memcache"
	"scaffold/pkg/utils"
)

type memoryAccounts struct {
	mu   sync.Mutex
	rows []*db_models.Account
}

func (m *memoryAccounts) Insert(_ context.Context, a *db_models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.BeforeCreate(nil)
	m.rows = append(m.rows, a)
	return nil
}

func (m *memoryAccounts) Update(_ context.Context, a *db_models.Account) error { return nil }

func (m *memoryAccounts) find(match func(*db_models.Account) bool) (*db_models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if match(a) {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memoryAccounts) FindById(_ context.Context, id string) (*db_models.Account, error) {
	return m.find(func(a *db_models.Account) bool { return a.ID.String() == id })
}

func (m *memoryAccounts) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	return m.find(func(a *db_models.Account) bool { return a.Email == email })
}

func (m *memoryAccounts) FindByName(_ context.Context, name string) (*db_models.Account, error) {
	return m.find(func(a *db_models.Account) bool { return a.Name == name })
}

type linkMailer struct {
	mu    sync.Mutex
	links []string
}

func (l *linkMailer) record(link string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.links = append(l.links, link)
	return nil
}

func (l *linkMailer) lastWith(path string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.links) - 1; i >= 0; i-- {
		if strings.Contains(l.links[i], path) {
			return l.links[i]
		}
	}
	return ""
}

func (l *linkMailer) SendWelcomeEmail(_, _, link string) error { return l.record(link) }
func (l *linkMailer) SendVerifyEmail(_, _, link string) error  { return l.record(link) }
func (l *linkMailer) SendResetEmail(_, _, link string) error   { return l.record(link) }

type server struct {
	*httptest.Server
	mailer *linkMailer
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New(logger.Config{Output: io.Discard})
	issuer, err := utils.NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)

	mailer := &linkMailer{}
	svc := services.NewAccountService(&memoryAccounts{}, mailer, mem.NewMemorySignStore(), issuer, "http://app.test", log)
	r := NewRouter(controllers.NewAccountController(svc), issuer, log)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &server{Server: srv, mailer: mailer}
}

type notes struct {
	mu     sync.Mutex
	errors []string
	oks    []string
}

func (n *notes) Success(_, msg string) { n.mu.Lock(); n.oks = append(n.oks, msg); n.mu.Unlock() }
func (n *notes) Error(_, msg string)   { n.mu.Lock(); n.errors = append(n.errors, msg); n.mu.Unlock() }
func (n *notes) CloseAll()             {}

type navigation chan string

func (n navigation) Push(path string) { n <- path }

type session struct{ user apiclient.User }

func (s *session) SetUser(u apiclient.User) error { s.user = u; return nil }

func TestRegisterAndResetThroughScreens(t *testing.T) {
	srv := newServer(t)
	client := apiclient.New(srv.URL, 5*time.Second)
	ctx := context.Background()
	footer := screens.Footer{SiteName: "guve scaffold"}

	nav := make(navigation, 1)
	n := &notes{}
	sess := &session{}
	reg := screens.NewRegisterScreen(ctx, screens.Deps{Poster: client, Notifier: n, Navigator: nav, Session: sess}, footer)
	defer reg.Close()

	for field, v := range map[string]string{"name": "validuser", "email": "a@b.com", "password": "secret1", "repassword": "secret1"} {
		require.NoError(t, reg.Set(field, v))
	}
	require.NoError(t, reg.Submit())
	reg.Wait()
	require.Empty(t, n.errors)

	select {
	case path := <-nav:
		assert.Equal(t, "/user", path)
	case <-time.After(5 * time.Second):
		t.Fatal("registration did not navigate")
	}
	assert.NotEmpty(t, sess.user.Token)

	// duplicate registration surfaces the server message
	dup := screens.NewRegisterScreen(ctx, screens.Deps{Poster: client, Notifier: n, Navigator: nav}, footer)
	defer dup.Close()
	for field, v := range map[string]string{"name": "validuser", "email": "a@b.com", "password": "secret1", "repassword": "secret1"} {
		require.NoError(t, dup.Set(field, v))
	}
	require.NoError(t, dup.Submit())
	dup.Wait()
	assert.Equal(t, []string{"username already exists"}, n.errors)

	require.NoError(t, client.SendResetEmail(ctx, "a@b.com"))
	link, err := url.Parse(srv.mailer.lastWith("/password/reset"))
	require.NoError(t, err)
	assert.Equal(t, "/password/reset", link.Path)

	reset := screens.NewResetScreen(ctx, screens.Deps{Poster: client, Notifier: n, Navigator: nav}, footer, link.Query())
	defer reset.Close()
	require.True(t, reset.SubmitEnabled())
	require.NoError(t, reset.Set("password", "newpass"))
	require.NoError(t, reset.Set("repassword", "newpass"))
	require.NoError(t, reset.Submit())
	reset.Wait()

	select {
	case path := <-nav:
		assert.Equal(t, "/login", path)
	case <-time.After(5 * time.Second):
		t.Fatal("reset did not navigate")
	}

	user, err := client.Login(ctx, "a@b.com", "newpass")
	require.NoError(t, err)
	client.SetToken(user.Token)

	profile, err := client.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "validuser", profile.Name)
}

func TestValidationErrorsAre422(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/register", "application/json",
		strings.NewReader(`{"name":"validuser","email":"a@b.com","password":"secret1","repassword":"other11"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "repassword must match password")
}

func TestProfileRequiresToken(t *testing.T) {
	srv := newServer(t)
	client := apiclient.New(srv.URL, time.Second)

	_, err := client.Profile(context.Background())
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestResetWithUnknownSign(t *testing.T) {
	srv := newServer(t)
	client := apiclient.New(srv.URL, time.Second)

	_, err := client.Post(context.Background(), "/password/reset", map[string]string{
		"email": "a@b.com", "sign": "nope", "password": "secret1", "repassword": "secret1",
	})
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "link is invalid or expired", apiErr.Message)
}
