package services

import (
	"fmt"

	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: resend.NewClient(cfg.Email.ApiKey),
	}
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendOrderAcceptedEmail notifies a customer that their cart was
// accepted as an order.
func (es *EmailService) SendOrderAcceptedEmail(to string, customerName string, orderId int64) error {
	emailBody := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<style>
				body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
				.container { max-width: 600px; margin: 0 auto; padding: 20px; }
				.header { background-color: #8E44AD; color: white; padding: 20px; text-align: center; }
				.content { padding: 20px; background-color: #f9f9f9; }
				.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
			</style>
		</head>
		<body>
			<div class="container">
				<div class="header">
					<h1>Order received</h1>
				</div>
				<div class="content">
					<p>Dear %s,</p>
					<p>Thank you for your order! We have received it and will be in touch shortly to confirm the details.</p>
					<p>Your order reference is <strong>#%d</strong>.</p>
				</div>
				<div class="footer">
					<p>%s</p>
				</div>
			</div>
		</body>
		</html>
	`, customerName, orderId, es.cfg.Server.AppName)

	subject := fmt.Sprintf("Order #%d received", orderId)
	return es.SendEmail([]string{to}, subject, emailBody)
}
