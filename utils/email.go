package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func emailConfigFromEnv() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email
func SendEmail(to, subject, body string) error {
	config := emailConfigFromEnv()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return WrapError(err, "failed to send email")
	}

	return nil
}

// SendOrderConfirmation emails the customer their order summary
func SendOrderConfirmation(to, customerName, reference, total string) error {
	subject := fmt.Sprintf("FreshMart order %s confirmed", reference)
	body := fmt.Sprintf(`
		<h2>Thank you, %s!</h2>
		<p>Your order <strong>%s</strong> has been placed.</p>
		<p>Order total: <strong>%s</strong></p>
		<p>We will let you know when it is out for delivery.</p>
	`, customerName, reference, total)
	return SendEmail(to, subject, body)
}
