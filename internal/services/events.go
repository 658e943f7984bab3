package services

import (
	"github.com/medrelay-dev/medrelay/internal/logger"
	"github.com/medrelay-dev/medrelay/internal/models"
	"github.com/medrelay-dev/medrelay/internal/store"
	"github.com/sirupsen/logrus"
)

// NotificationEvent is the wire shape delivered on the notification queue
// by other services. RecipientType is optional; events without it address
// patients, the common case for internally produced alerts.
type NotificationEvent struct {
	Type          string `json:"type"` // "CHAT", "CONSENT", "ONE_WAY"
	Body          string `json:"body"`
	RecipientID   int64  `json:"recipientId"`
	RecipientType string `json:"recipientType,omitempty"`
}

func (e NotificationEvent) recipientType() string {
	if e.RecipientType != "" {
		return e.RecipientType
	}
	return "PATIENT"
}

// The event processors skip the reference checks the HTTP send path runs:
// queue producers are internal services that own the referenced entities.

func (s *NotificationService) ProcessChatEvent(event NotificationEvent) error {
	notification := models.ChatNotification{
		Message:       models.EncryptedString(event.Body),
		RecipientType: models.EncryptedString(event.recipientType()),
		RecipientID:   models.EncryptedInt64(event.RecipientID),
	}

	if err := store.Insert(&notification); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"id":        notification.ID,
		"recipient": event.RecipientID,
	}).Info("stored chat notification from event")

	return nil
}

func (s *NotificationService) ProcessConsentEvent(event NotificationEvent) error {
	notification := models.ConsentRequestNotification{
		Message:       models.EncryptedString(event.Body),
		RecipientType: models.EncryptedString(event.recipientType()),
		RecipientID:   models.EncryptedInt64(event.RecipientID),
	}

	if err := store.Insert(&notification); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"id":        notification.ID,
		"recipient": event.RecipientID,
	}).Info("stored consent request notification from event")

	return nil
}

func (s *NotificationService) ProcessOneWayEvent(event NotificationEvent) error {
	notification := models.OneWayNotification{
		Message:       models.EncryptedString(event.Body),
		RecipientType: models.EncryptedString(event.recipientType()),
		RecipientID:   models.EncryptedInt64(event.RecipientID),
	}

	if err := store.Insert(&notification); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"id":        notification.ID,
		"recipient": event.RecipientID,
	}).Info("stored one-way notification from event")

	return nil
}
