package mailing

import (
	"Foodgram-Backend/internal/utils"
	"strconv"

	"gopkg.in/gomail.v2"
)

type smtpConfig struct {
	Host     string
	Port     int
	Sender   string
	Email    string
	Password string
}

func loadSMTPConfig() (smtpConfig, error) {
	port, err := strconv.Atoi(utils.GetConfig("SMTP_PORT"))
	if err != nil {
		return smtpConfig{}, err
	}
	return smtpConfig{
		Host:     utils.GetConfig("SMTP_HOST"),
		Port:     port,
		Sender:   utils.GetConfig("SMTP_SENDER_NAME"),
		Email:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		Password: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}, nil
}

// SendMail delivers a single HTML email through the configured SMTP relay.
func SendMail(toEmail string, subject string, body string) error {
	cfg, err := loadSMTPConfig()
	if err != nil {
		return err
	}

	message := gomail.NewMessage()
	message.SetHeader("From", cfg.Email)
	message.SetHeader("To", toEmail)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Email, cfg.Password)
	return dialer.DialAndSend(message)
}
