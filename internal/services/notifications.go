package services

import (
	"github.com/medrelay-dev/medrelay/internal/apperrors"
	"github.com/medrelay-dev/medrelay/internal/identity"
	"github.com/medrelay-dev/medrelay/internal/models"
	"github.com/medrelay-dev/medrelay/internal/store"
)

// ReferenceValidator confirms externally-owned entities before a send is
// accepted. *identity.Client is the production implementation.
type ReferenceValidator interface {
	IsRecipientValid(recipientType string, recipientID int64, caller identity.Caller) bool
	IsChatValid(chatType string, chatID int64, caller identity.Caller) bool
	IsConsentRequestValid(consentRequestID int64, caller identity.Caller) bool
}

// Authenticator resolves a bearer header to a caller, or nil.
type Authenticator interface {
	Authenticate(authorizationHeader string) *identity.Caller
}

type NotificationService struct {
	validator     ReferenceValidator
	authenticator Authenticator
}

func NewNotificationService(validator ReferenceValidator, authenticator Authenticator) *NotificationService {
	return &NotificationService{
		validator:     validator,
		authenticator: authenticator,
	}
}

// Authenticate is invoked once per inbound request by the auth middleware.
func (s *NotificationService) Authenticate(authorizationHeader string) *identity.Caller {
	return s.authenticator.Authenticate(authorizationHeader)
}

// --- retrieval ---

// The list queries are pre-scoped to the caller's own identity, so no
// per-row ownership check is needed.

func (s *NotificationService) FindAllChatNotificationsByRecipient(recipientType string, recipientID int64) ([]models.ChatNotification, error) {
	return store.FindByRecipient[models.ChatNotification](recipientType, recipientID)
}

func (s *NotificationService) FindAllConsentRequestNotificationsByRecipient(recipientType string, recipientID int64) ([]models.ConsentRequestNotification, error) {
	return store.FindByRecipient[models.ConsentRequestNotification](recipientType, recipientID)
}

func (s *NotificationService) FindAllOneWayNotificationsByRecipient(recipientType string, recipientID int64) ([]models.OneWayNotification, error) {
	return store.FindByRecipient[models.OneWayNotification](recipientType, recipientID)
}

func (s *NotificationService) FindChatNotificationByID(id uint, caller identity.Caller) (*models.ChatNotification, error) {
	return store.FetchAndValidate[models.ChatNotification](id, caller)
}

func (s *NotificationService) FindConsentRequestNotificationByID(id uint, caller identity.Caller) (*models.ConsentRequestNotification, error) {
	return store.FetchAndValidate[models.ConsentRequestNotification](id, caller)
}

func (s *NotificationService) FindOneWayNotificationByID(id uint, caller identity.Caller) (*models.OneWayNotification, error) {
	return store.FetchAndValidate[models.OneWayNotification](id, caller)
}

// --- sending ---

// Each send validates the recipient first, then the variant-specific
// reference. The order is part of the contract: a bad recipient reports
// RecipientNotFound even when the reference is also bad.

func (s *NotificationService) SendChatNotification(message, recipientType string, recipientID int64, chatType string, chatID int64, caller identity.Caller) error {
	if !s.validator.IsRecipientValid(recipientType, recipientID, caller) {
		return apperrors.ErrRecipientNotFound
	}

	if !s.validator.IsChatValid(chatType, chatID, caller) {
		return apperrors.ErrInvalidChat
	}

	notification := models.ChatNotification{
		Message:       models.EncryptedString(message),
		RecipientType: models.EncryptedString(recipientType),
		RecipientID:   models.EncryptedInt64(recipientID),
		ChatType:      models.EncryptedString(chatType),
		ChatID:        models.EncryptedInt64(chatID),
	}

	return store.Insert(&notification)
}

func (s *NotificationService) SendConsentRequestNotification(message, recipientType string, recipientID int64, consentRequestID int64, caller identity.Caller) error {
	if !s.validator.IsRecipientValid(recipientType, recipientID, caller) {
		return apperrors.ErrRecipientNotFound
	}

	if !s.validator.IsConsentRequestValid(consentRequestID, caller) {
		return apperrors.ErrInvalidConsentRequest
	}

	notification := models.ConsentRequestNotification{
		Message:          models.EncryptedString(message),
		RecipientType:    models.EncryptedString(recipientType),
		RecipientID:      models.EncryptedInt64(recipientID),
		ConsentRequestID: models.EncryptedInt64(consentRequestID),
	}

	return store.Insert(&notification)
}

func (s *NotificationService) SendOneWayNotification(message, recipientType string, recipientID int64, caller identity.Caller) error {
	if !s.validator.IsRecipientValid(recipientType, recipientID, caller) {
		return apperrors.ErrRecipientNotFound
	}

	notification := models.OneWayNotification{
		Message:       models.EncryptedString(message),
		RecipientType: models.EncryptedString(recipientType),
		RecipientID:   models.EncryptedInt64(recipientID),
	}

	return store.Insert(&notification)
}

// --- deletion ---

func (s *NotificationService) DeleteChatNotification(id uint, caller identity.Caller) error {
	return store.DeleteSecurely[models.ChatNotification](id, caller)
}

func (s *NotificationService) DeleteConsentRequestNotification(id uint, caller identity.Caller) error {
	return store.DeleteSecurely[models.ConsentRequestNotification](id, caller)
}

func (s *NotificationService) DeleteOneWayNotification(id uint, caller identity.Caller) error {
	return store.DeleteSecurely[models.OneWayNotification](id, caller)
}

func (s *NotificationService) DeleteAllChatNotifications(recipientType string, recipientID int64) error {
	return store.DeleteByRecipient[models.ChatNotification](recipientType, recipientID)
}

func (s *NotificationService) DeleteAllConsentRequestNotifications(recipientType string, recipientID int64) error {
	return store.DeleteByRecipient[models.ConsentRequestNotification](recipientType, recipientID)
}

func (s *NotificationService) DeleteAllOneWayNotifications(recipientType string, recipientID int64) error {
	return store.DeleteByRecipient[models.OneWayNotification](recipientType, recipientID)
}
