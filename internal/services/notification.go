package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	apperrors "github.com/tazecep/grocery-marketplace/internal/errors"
	"github.com/tazecep/grocery-marketplace/internal/models"
	repository "github.com/tazecep/grocery-marketplace/internal/repositories"
	"github.com/tazecep/grocery-marketplace/pkg/sendgrid"
)

type NotificationService interface {
	NotifyOrderStatus(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, status string) error
	NotifyApplicationStatus(ctx context.Context, userID uuid.UUID, status, notes string) error
	ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Notification, error)
}

type notificationService struct {
	repo  repository.NotificationRepository
	users repository.UserRepository
	email sendgrid.EmailSender
}

func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository, email sendgrid.EmailSender) NotificationService {
	return &notificationService{repo: repo, users: users, email: email}
}

var orderStatusSubjects = map[string]string{
	models.OrderStatusAccepted:   "Your order has been accepted",
	models.OrderStatusPreparing:  "Your order is being prepared",
	models.OrderStatusReady:      "Your order is ready",
	models.OrderStatusDelivering: "Your order is on the way",
	models.OrderStatusCompleted:  "Your order has been delivered",
	models.OrderStatusCancelled:  "Your order has been cancelled",
}

func (s *notificationService) NotifyOrderStatus(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, status string) error {
	subject, ok := orderStatusSubjects[status]
	if !ok {
		subject = fmt.Sprintf("Your order status changed to %s", status)
	}

	body := fmt.Sprintf("Order %s is now %s.", orderID, status)

	return s.deliver(ctx, userID, models.NotificationTypeOrderStatus, subject, body)
}

func (s *notificationService) NotifyApplicationStatus(ctx context.Context, userID uuid.UUID, status, notes string) error {
	var subject string

	switch status {
	case models.ApplicationStatusApproved:
		subject = "Your vendor application has been approved"
	case models.ApplicationStatusRejected:
		subject = "Your vendor application has been rejected"
	case models.ApplicationStatusDocumentsRequested:
		subject = "Additional documents requested for your vendor application"
	default:
		subject = "Your vendor application status changed"
	}

	body := subject + "."
	if notes != "" {
		body = fmt.Sprintf("%s Reviewer notes: %s", body, notes)
	}

	return s.deliver(ctx, userID, models.NotificationTypeApplicationStatus, subject, body)
}

// deliver records the notification first so a failed send still leaves an
// audit row, then flips the status after the email attempt.
func (s *notificationService) deliver(ctx context.Context, userID uuid.UUID, notificationType, subject, body string) error {
	notification := &models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    notificationType,
		Subject: subject,
		Body:    body,
		Status:  models.NotificationStatusPending,
	}

	if err := s.repo.CreateNotification(ctx, notification); err != nil {
		return apperrors.DatabaseError("Failed to record notification").WithError(err)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		_ = s.repo.UpdateStatus(ctx, notification.ID, models.NotificationStatusFailed)

		return apperrors.NotFoundError("Recipient not found").WithError(err)
	}

	if err := s.email.Send(ctx, user.Email, subject, body, ""); err != nil {
		_ = s.repo.UpdateStatus(ctx, notification.ID, models.NotificationStatusFailed)

		return apperrors.ThirdPartyError("Failed to send email").WithError(err)
	}

	if err := s.repo.UpdateStatus(ctx, notification.ID, models.NotificationStatusSent); err != nil {
		return apperrors.DatabaseError("Failed to update notification status").WithError(err)
	}

	return nil
}

func (s *notificationService) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to fetch notifications").WithError(err)
	}

	return notifications, nil
}
