// Package screens holds the registration and password reset screen
// controllers: form state, validation, submission and the post-submit
// notification and navigation.
package screens

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"scaffold/internal/apiclient"
	"scaffold/pkg/logger"
)

// RedirectDelay is how long the success notification stays before navigation.
const RedirectDelay = 2000 * time.Millisecond

var (
	ErrSubmitDisabled   = errors.New("submit is disabled")
	ErrSubmitInFlight   = errors.New("a submission is already in flight")
	ErrScreenClosed     = errors.New("screen is closed")
	ErrAlreadySubmitted = errors.New("screen has already been submitted")
)

type State int

const (
	Editing State = iota
	Submitted
)

func (s State) String() string {
	if s == Submitted {
		return "submitted"
	}
	return "editing"
}

type Notifier interface {
	Success(title, message string)
	Error(title, message string)
	CloseAll()
}

type Navigator interface {
	Push(path string)
}

type Poster interface {
	Post(ctx context.Context, path string, body any) (*apiclient.Response, error)
}

// Session keeps the signed-in user after registration.
type Session interface {
	SetUser(u apiclient.User) error
}

// Task is a scheduled callback that can still be cancelled.
type Task interface {
	Stop() bool
}

type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// Deps are the collaborators a screen talks to. Poster, Notifier and
// Navigator are required; the rest have defaults.
type Deps struct {
	Poster    Poster
	Notifier  Notifier
	Navigator Navigator
	Session   Session
	Scheduler Scheduler
	Messages  *Messages
	Logger    logger.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Scheduler == nil {
		d.Scheduler = timerScheduler{}
	}
	if d.Logger == nil {
		d.Logger = logger.Default()
	}
	return d
}

// screen is the machinery shared by both screens: one request at a time, a
// cancellable redirect and teardown.
type screen struct {
	deps      Deps
	validator *Validator

	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group

	mu       sync.Mutex
	state    State
	redirect Task
	closed   bool
}

func newScreen(ctx context.Context, deps Deps) *screen {
	deps = deps.withDefaults()
	ctx, cancel := context.WithCancel(ctx)
	s := &screen{
		deps:      deps,
		validator: NewValidator(deps.Messages),
		ctx:       ctx,
		cancel:    cancel,
	}
	s.group.SetLimit(1)
	return s
}

func (s *screen) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *screen) notifyError(msg string) {
	s.deps.Notifier.Error(s.deps.Messages.get(msgErrorTitle), msg)
}

// submit validates synchronously, then posts body on a background goroutine.
// onOK decides whether the response counts as success.
func (s *screen) submit(check Result, path string, body any, onOK func(*apiclient.Response) bool, successMsg, dest string) error {
	s.mu.Lock()
	closed, state := s.closed, s.state
	s.mu.Unlock()
	if closed {
		return ErrScreenClosed
	}
	if state == Submitted {
		return ErrAlreadySubmitted
	}

	if !check.OK {
		s.notifyError(check.Message)
		return nil
	}

	started := s.group.TryGo(func() error {
		resp, err := s.deps.Poster.Post(s.ctx, path, body)
		if err != nil {
			s.onFailure(path, err)
			return nil
		}
		if !onOK(resp) {
			s.onFailure(path, &apiclient.APIError{StatusCode: resp.Code, Message: resp.Message, TraceID: resp.TraceID})
			return nil
		}
		s.onSuccess(successMsg, dest)
		return nil
	})
	if !started {
		return ErrSubmitInFlight
	}
	return nil
}

func (s *screen) onFailure(path string, err error) {
	if s.ctx.Err() != nil {
		return
	}
	s.deps.Logger.Warn("submit failed", "path", path, "err", err)

	msg := err.Error()
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	s.notifyError(msg)
}

func (s *screen) onSuccess(msg, dest string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.state = Submitted
	s.mu.Unlock()

	s.deps.Notifier.Success(s.deps.Messages.get(msgOKTitle), msg)

	var once sync.Once
	task := s.deps.Scheduler.AfterFunc(RedirectDelay, func() {
		s.mu.Lock()
		closed := s.closed
		s.redirect = nil
		s.mu.Unlock()
		if closed {
			return
		}
		once.Do(func() {
			s.deps.Notifier.CloseAll()
			s.deps.Navigator.Push(dest)
		})
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		task.Stop()
		return
	}
	if s.redirect != nil {
		s.redirect.Stop()
	}
	s.redirect = task
}

// Wait blocks until the in-flight submission, if any, has been handled.
func (s *screen) Wait() {
	_ = s.group.Wait()
}

// Close tears the screen down. A pending redirect is cancelled and never
// fires; an in-flight request is cancelled and awaited.
func (s *screen) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.redirect != nil {
		s.redirect.Stop()
		s.redirect = nil
	}
	s.mu.Unlock()

	s.cancel()
	_ = s.group.Wait()
}
