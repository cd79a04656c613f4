package screens

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

var (
	msgErrorTitle = &i18n.Message{ID: "ErrorTitle", Other: "Error"}
	msgOKTitle    = &i18n.Message{ID: "SuccessTitle", Other: "Success"}

	msgNameLength          = &i18n.Message{ID: "NameLength", Other: "Username must be 6-15 characters"}
	msgEmailFormat         = &i18n.Message{ID: "EmailFormat", Other: "Invalid email format"}
	msgPasswordLength      = &i18n.Message{ID: "PasswordLength", Other: "Password must be 6-15 characters"}
	msgResetPasswordLength = &i18n.Message{ID: "ResetPasswordLength", Other: "Password length must be 6-15 characters"}
	msgPasswordMismatch    = &i18n.Message{ID: "PasswordMismatch", Other: "Passwords do not match"}

	msgInvalidLink     = &i18n.Message{ID: "InvalidLink", Other: "Invalid link, please check it"}
	msgRegisterSuccess = &i18n.Message{ID: "RegisterSuccess", Other: "Registered! Redirecting to your profile..."}
	msgResetSuccess    = &i18n.Message{ID: "ResetSuccess", Other: "Password reset! Redirecting to login..."}
)

var zhMessages = []*i18n.Message{
	{ID: "ErrorTitle", Other: "错误"},
	{ID: "SuccessTitle", Other: "成功"},
	{ID: "NameLength", Other: "用户名应该为6-15个字符"},
	{ID: "EmailFormat", Other: "邮箱格式错误"},
	{ID: "PasswordLength", Other: "密码应该为6-15个字符"},
	{ID: "ResetPasswordLength", Other: "密码长度应该为6-15个字符"},
	{ID: "PasswordMismatch", Other: "确认密码与密码不同"},
	{ID: "InvalidLink", Other: "链接错误~请检查"},
	{ID: "RegisterSuccess", Other: "注册成功~即将跳转到个人页面..."},
	{ID: "ResetSuccess", Other: "重置密码成功~即将跳转到登录..."},
}

var bundle = newBundle()

func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.English)
	if err := b.AddMessages(language.Chinese, zhMessages...); err != nil {
		panic(err)
	}
	return b
}

// Messages resolves user-facing strings for one locale.
type Messages struct {
	loc *i18n.Localizer
}

// NewMessages accepts any BCP 47 tag; unknown locales fall back to English.
func NewMessages(locale string) *Messages {
	return &Messages{loc: i18n.NewLocalizer(bundle, locale)}
}

func (m *Messages) get(msg *i18n.Message) string {
	if m == nil {
		return msg.Other
	}
	s, err := m.loc.Localize(&i18n.LocalizeConfig{DefaultMessage: msg})
	if err != nil {
		return msg.Other
	}
	return s
}
