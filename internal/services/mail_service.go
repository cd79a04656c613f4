package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	texttemplate "text/template"
	"time"

	"scaffold/internal/screens"
	"scaffold/pkg/logger"
	mem "scaffold/pkg/memcache"
)

type IMailService interface {
	SendWelcomeEmail(to, name, verifyURL string) error
	SendVerifyEmail(to, name, verifyURL string) error
	SendResetEmail(to, name, resetURL string) error
}

// SMTPConfig holds SMTP credentials and branding.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool // implicit TLS, usually 465; otherwise STARTTLS
	RequireTLS bool // fail when the server does not offer STARTTLS

	AppName string
}

type smtpMailService struct {
	cfg     SMTPConfig
	log     logger.Logger
	htmlTpl *template.Template
	textTpl *texttemplate.Template
	send    func(to, subject, html, text string) error
}

func NewSMTPMailService(cfg SMTPConfig, log logger.Logger) IMailService {
	s := &smtpMailService{
		cfg:     cfg,
		log:     log,
		htmlTpl: template.Must(template.New("html").Parse(htmlTemplate)),
		textTpl: texttemplate.Must(texttemplate.New("text").Parse(textTemplate)),
	}
	s.send = s.sendSMTP
	return s
}

func linkTTLNote() string {
	return fmt.Sprintf("The link is valid for %d minutes.", int(mem.SignTTL.Minutes()))
}

func (s *smtpMailService) SendWelcomeEmail(to, name, verifyURL string) error {
	return s.deliver(to, "Welcome to "+s.cfg.AppName, EmailData{
		Greeting:  fmt.Sprintf("Hi %s,", name),
		Intro:     fmt.Sprintf("Thanks for registering with %s. Please confirm your email address.", s.cfg.AppName),
		ButtonURL: verifyURL,
		ButtonTxt: "Verify email",
		Note:      linkTTLNote(),
	})
}

func (s *smtpMailService) SendVerifyEmail(to, name, verifyURL string) error {
	return s.deliver(to, "Verify your email", EmailData{
		Greeting:  fmt.Sprintf("Hi %s,", name),
		Intro:     "You asked to verify your email address.",
		ButtonURL: verifyURL,
		ButtonTxt: "Verify email",
		Note:      linkTTLNote(),
	})
}

func (s *smtpMailService) SendResetEmail(to, name, resetURL string) error {
	return s.deliver(to, "Reset your password", EmailData{
		Greeting:  fmt.Sprintf("Hi %s,", name),
		Intro:     "We received a request to reset your password. If you did not ask for this, ignore this email.",
		ButtonURL: resetURL,
		ButtonTxt: "Reset password",
		Note:      linkTTLNote(),
	})
}

type EmailData struct {
	Title     string
	Greeting  string
	Intro     string
	ButtonURL string
	ButtonTxt string
	Note      string
	AppName   string
	Footer    string
}

const htmlTemplate = `<!doctype html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="font-family:Helvetica,Arial,sans-serif;color:#1f2937">
  <h3>{{.Greeting}}</h3>
  <p>{{.Intro}}</p>
  {{if .ButtonURL}}
  <p><a href="{{.ButtonURL}}">{{.ButtonTxt}}</a></p>
  <p>Or copy this link into your browser: {{.ButtonURL}}</p>
  {{end}}
  {{if .Note}}<p>{{.Note}}</p>{{end}}
  <hr>
  <p style="color:#6b7280;font-size:12px">{{.Footer}}</p>
</body>
</html>`

const textTemplate = `{{.Greeting}}

{{.Intro}}
{{if .ButtonURL}}
{{.ButtonTxt}}: {{.ButtonURL}}
{{end}}{{if .Note}}
{{.Note}}
{{end}}
{{.Footer}}
`

func (s *smtpMailService) deliver(to, subject string, data EmailData) error {
	data.Title = subject
	data.AppName = s.cfg.AppName
	data.Footer = screens.Footer{SiteName: s.cfg.AppName}.Render()

	html, text, err := s.renderEmail(data)
	if err != nil {
		return err
	}
	if s.cfg.Host == "" {
		s.log.Warn("smtp host is empty, mail not sent", "to", to, "subject", subject)
		return nil
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) renderEmail(data EmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer
	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.BEncoding.Encode("UTF-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

func (s *smtpMailService) sendSMTP(to, subject, htmlBody, textBody string) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	var err error
	if s.cfg.UseSSL {
		conn, err = tls.DialWithDialer(&net.Dialer{Timeout: 10 * time.Second}, "tcp", addr, tlsCfg)
	} else {
		conn, err = (&net.Dialer{Timeout: 10 * time.Second}).Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if !s.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		} else if s.cfg.RequireTLS {
			return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(s.buildMessage(to, subject, htmlBody, textBody)); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}
