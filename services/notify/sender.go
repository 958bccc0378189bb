package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
)

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

// Sender delivers a composed message. The SMTP implementation is the
// real thing; StdoutSender stands in when no server is configured or
// email is disabled for a run.
type Sender interface {
	Send(msg *email.Email) error
}

type SmtpSender struct {
	Config SmtpConfig
}

func (s SmtpSender) Send(msg *email.Email) error {
	addr := fmt.Sprintf("%s:%d", s.Config.Server, s.Config.Port)
	err := msg.Send(
		addr,
		smtp.PlainAuth("", s.Config.EmailAddress, s.Config.Password, s.Config.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		return msg.Send(addr, nil)
	}
	return err
}

// StdoutSender prints the envelope instead of delivering it.
type StdoutSender struct{}

func (StdoutSender) Send(msg *email.Email) error {
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Subject: %s\nFrom: %s\nTo: %s\nCc: %s\nBcc: %s\n",
		msg.Subject,
		msg.From,
		strings.Join(msg.To, ", "),
		strings.Join(msg.Cc, ", "),
		strings.Join(msg.Bcc, ", "),
	)
	fmt.Println()
	fmt.Println(string(msg.Text))
	return nil
}

// NewSender picks the SMTP sender when a server is configured,
// otherwise falls back to stdout.
func NewSender(cfg SmtpConfig) Sender {
	if cfg.Server == "" {
		return StdoutSender{}
	}
	return SmtpSender{Config: cfg}
}
