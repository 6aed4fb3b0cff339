package infra

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Mailer sends plain-text notifications through SMTP.
type Mailer struct {
	host string
	port int
	user string
	pass string
}

func NewMailer(host string, port int, user, pass string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass}
}

// Enabled reports whether SMTP credentials were configured.
func (m *Mailer) Enabled() bool { return m != nil && m.host != "" }

func (m *Mailer) Send(para, asunto, cuerpo string) error {
	if !m.Enabled() {
		return nil
	}
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{para}
	e.Subject = asunto
	e.Text = []byte(cuerpo)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	return e.Send(addr, smtp.PlainAuth("", m.user, m.pass, m.host))
}
