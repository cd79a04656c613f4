package screens

import (
	"context"
	"net/url"

	"scaffold/internal/apiclient"
)

const (
	ResetPath    = "/password/reset"
	ResetSuccess = "/login"

	resetOKMessage = "success"
)

type ResetScreen struct {
	*screen
	form     ResetForm
	footer   Footer
	disabled bool
}

// NewResetScreen opens the reset screen for the link parameters in query.
// Without both email and sign the submit control starts disabled and an
// error is shown once.
func NewResetScreen(ctx context.Context, deps Deps, footer Footer, query url.Values) *ResetScreen {
	r := &ResetScreen{
		screen: newScreen(ctx, deps),
		footer: footer,
	}
	_, hasEmail := query["email"]
	_, hasSign := query["sign"]
	if hasEmail && hasSign {
		r.form.Email = query.Get("email")
		r.form.Sign = query.Get("sign")
	} else {
		r.disabled = true
		r.notifyError(r.deps.Messages.get(msgInvalidLink))
	}
	return r
}

func (r *ResetScreen) Set(field, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form.Set(field, value)
}

func (r *ResetScreen) Form() ResetForm {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.form
}

func (r *ResetScreen) Footer() Footer { return r.footer }

func (r *ResetScreen) SubmitEnabled() bool { return !r.disabled }

func (r *ResetScreen) Validate() Result {
	return r.validator.Reset(r.Form())
}

func (r *ResetScreen) Submit() error {
	if r.disabled {
		return ErrSubmitDisabled
	}
	form := r.Form()
	return r.submit(r.validator.Reset(form), ResetPath, form,
		func(resp *apiclient.Response) bool { return resp.Message == resetOKMessage },
		r.deps.Messages.get(msgResetSuccess), ResetSuccess)
}
