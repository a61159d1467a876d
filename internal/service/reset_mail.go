// Package service holds outbound side effects that sit next to the request
// path without being part of it
package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// ErrMailDisabled means no SMTP host is configured; callers treat delivery
// as best-effort and move on
var ErrMailDisabled = errors.New("mail delivery not configured")

// SendResetMail delivers a password-reset token by email. Callers run this in
// a goroutine; a failure here must never block or fail the triggering request.
func SendResetMail(sendTo, resetToken string) error {
	host := viper.GetString("mail.host")
	if host == "" {
		return ErrMailDisabled
	}

	from := viper.GetString("mail.sender")
	if sendTo == from {
		return errors.New("invalid email address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", sendTo)
	m.SetHeader("Subject", "Reset your TaskMind password")
	m.SetBody("text/html", fmt.Sprintf(
		"Use this token to reset your password:<br><br><code>%s</code><br><br>It expires shortly. If you didn't ask for a reset you can ignore this mail.",
		resetToken))

	d := gomail.NewDialer(host, viper.GetInt("mail.port"), from, viper.GetString("mail.password"))

	return d.DialAndSend(m)
}
