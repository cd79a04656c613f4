package screens

import (
	"context"

	"scaffold/internal/apiclient"
)

const (
	RegisterPath    = "/register"
	RegisterSuccess = "/user"
)

type RegisterScreen struct {
	*screen
	form   RegisterForm
	footer Footer
}

func NewRegisterScreen(ctx context.Context, deps Deps, footer Footer) *RegisterScreen {
	return &RegisterScreen{
		screen: newScreen(ctx, deps),
		footer: footer,
	}
}

func (r *RegisterScreen) Set(field, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form.Set(field, value)
}

func (r *RegisterScreen) Form() RegisterForm {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form
}

func (r *RegisterScreen) Footer() Footer { return r.footer }

func (r *RegisterScreen) Validate() Result {
	return r.validator.Register(r.Form())
}

// Submit validates the form and, when it passes, posts it without waiting
// for the response. Validation failures are reported through the notifier.
func (r *RegisterScreen) Submit() error {
	form := r.Form()
	return r.submit(r.validator.Register(form), RegisterPath, form,
		r.storeUser, r.deps.Messages.get(msgRegisterSuccess), RegisterSuccess)
}

func (r *RegisterScreen) storeUser(resp *apiclient.Response) bool {
	if r.deps.Session == nil {
		return true
	}
	var u apiclient.User
	if err := resp.DecodeData(&u); err != nil {
		r.deps.Logger.Warn("register response carried no user", "err", err)
		return true
	}
	if err := r.deps.Session.SetUser(u); err != nil {
		r.deps.Logger.Warn("store session", "err", err)
	}
	return true
}
