package sendgrid

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailSender interface {
	Send(ctx context.Context, toEmail, subject, plainContent, htmlContent string) error
}

type emailSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailSender(apiKey, fromEmail, fromName string) EmailSender {
	return &emailSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (e *emailSender) Send(ctx context.Context, toEmail, subject, plainContent, htmlContent string) error {
	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail("", toEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", plainContent))

	if htmlContent != "" {
		message.AddContent(mail.NewContent("text/html", htmlContent))
	}

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
