package mailer

import (
	"strconv"

	"gopkg.in/gomail.v2"

	"hoh_backend/internals/configs"
)

// Sender: transport email. Bisa gagal transien — worker yang retry.
type Sender interface {
	Send(to, subject, html string) error
}

/* ===================== SMTP (gomail) ===================== */

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSenderFromEnv() *SMTPSender {
	port, err := strconv.Atoi(configs.SMTPPort)
	if err != nil || port <= 0 {
		port = 587
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(configs.SMTPHost, port, configs.SMTPUser, configs.SMTPPassword),
		from:   configs.MailFrom,
	}
}

func (s *SMTPSender) Send(to, subject, html string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	return s.dialer.DialAndSend(m)
}
