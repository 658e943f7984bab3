package services

import (
	"testing"

	"github.com/medrelay-dev/medrelay/db"
	"github.com/medrelay-dev/medrelay/internal/apperrors"
	"github.com/medrelay-dev/medrelay/internal/crypto"
	"github.com/medrelay-dev/medrelay/internal/identity"
	applogger "github.com/medrelay-dev/medrelay/internal/logger"
	"github.com/medrelay-dev/medrelay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeValidator struct {
	recipientValid bool
	chatValid      bool
	consentValid   bool

	recipientChecked bool
	chatChecked      bool
	consentChecked   bool
}

func (f *fakeValidator) IsRecipientValid(recipientType string, recipientID int64, caller identity.Caller) bool {
	f.recipientChecked = true
	return f.recipientValid
}

func (f *fakeValidator) IsChatValid(chatType string, chatID int64, caller identity.Caller) bool {
	f.chatChecked = true
	return f.chatValid
}

func (f *fakeValidator) IsConsentRequestValid(consentRequestID int64, caller identity.Caller) bool {
	f.consentChecked = true
	return f.consentValid
}

type fakeAuthenticator struct {
	caller *identity.Caller
}

func (f *fakeAuthenticator) Authenticate(authorizationHeader string) *identity.Caller {
	return f.caller
}

func TestMain(m *testing.M) {
	applogger.InitLogger()
	m.Run()
}

func setupTestDB(t *testing.T) {
	t.Helper()

	require.NoError(t, crypto.Init("0123456789abcdef"))

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&models.ChatNotification{},
		&models.ConsentRequestNotification{},
		&models.OneWayNotification{},
	))

	db.DB = gdb

	t.Cleanup(func() {
		gdb.Exec("DELETE FROM chat_notifications")
		gdb.Exec("DELETE FROM consent_request_notifications")
		gdb.Exec("DELETE FROM one_way_notifications")
	})
}

func TestSendChatNotificationRejectsUnknownRecipient(t *testing.T) {
	setupTestDB(t)

	validator := &fakeValidator{recipientValid: false, chatValid: true}
	service := NewNotificationService(validator, &fakeAuthenticator{})
	caller := identity.Caller{Role: "DOCTOR", ID: 9, Token: "tok"}

	err := service.SendChatNotification("Hello", "PATIENT", 1, "PRIVATE", 101, caller)
	assert.ErrorIs(t, err, apperrors.ErrRecipientNotFound)

	// the recipient check failed, so the chat check never ran and nothing
	// was persisted
	assert.True(t, validator.recipientChecked)
	assert.False(t, validator.chatChecked)

	records, err := service.FindAllChatNotificationsByRecipient("PATIENT", 1)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSendChatNotificationRejectsInvalidChat(t *testing.T) {
	setupTestDB(t)

	validator := &fakeValidator{recipientValid: true, chatValid: false}
	service := NewNotificationService(validator, &fakeAuthenticator{})
	caller := identity.Caller{Role: "DOCTOR", ID: 9, Token: "tok"}

	err := service.SendChatNotification("Hello", "PATIENT", 1, "PRIVATE", 101, caller)
	assert.ErrorIs(t, err, apperrors.ErrInvalidChat)

	assert.True(t, validator.recipientChecked)
	assert.True(t, validator.chatChecked)

	records, err := service.FindAllChatNotificationsByRecipient("PATIENT", 1)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSendChatNotificationPersistsExactlyOneRecord(t *testing.T) {
	setupTestDB(t)

	validator := &fakeValidator{recipientValid: true, chatValid: true}
	service := NewNotificationService(validator, &fakeAuthenticator{})
	caller := identity.Caller{Role: "DOCTOR", ID: 9, Token: "tok"}

	require.NoError(t, service.SendChatNotification("Hello", "PATIENT", 1, "PRIVATE", 101, caller))

	records, err := service.FindAllChatNotificationsByRecipient("PATIENT", 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, models.EncryptedString("Hello"), records[0].Message)
	assert.Equal(t, models.EncryptedString("PATIENT"), records[0].RecipientType)
	assert.Equal(t, models.EncryptedInt64(1), records[0].RecipientID)
	assert.Equal(t, models.EncryptedString("PRIVATE"), records[0].ChatType)
	assert.Equal(t, models.EncryptedInt64(101), records[0].ChatID)
}

func TestSendConsentRequestNotification(t *testing.T) {
	setupTestDB(t)

	validator := &fakeValidator{recipientValid: true, consentValid: false}
	service := NewNotificationService(validator, &fakeAuthenticator{})
	caller := identity.Caller{Role: "DOCTOR", ID: 9, Token: "tok"}

	err := service.SendConsentRequestNotification("Consent?", "PATIENT", 1, 55, caller)
	assert.ErrorIs(t, err, apperrors.ErrInvalidConsentRequest)

	validator.consentValid = true
	require.NoError(t, service.SendConsentRequestNotification("Consent?", "PATIENT", 1, 55, caller))

	records, err := service.FindAllConsentRequestNotificationsByRecipient("PATIENT", 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.EncryptedInt64(55), records[0].ConsentRequestID)
}

func TestSendOneWayNotificationChecksRecipientOnly(t *testing.T) {
	setupTestDB(t)

	validator := &fakeValidator{recipientValid: true}
	service := NewNotificationService(validator, &fakeAuthenticator{})
	caller := identity.Caller{Role: "ADMIN", ID: 2, Token: "tok"}

	require.NoError(t, service.SendOneWayNotification("Maintenance tonight", "PATIENT", 1, caller))

	assert.True(t, validator.recipientChecked)
	assert.False(t, validator.chatChecked)
	assert.False(t, validator.consentChecked)
}

func TestListAndDeleteAllScenario(t *testing.T) {
	setupTestDB(t)

	validator := &fakeValidator{recipientValid: true, chatValid: true}
	service := NewNotificationService(validator, &fakeAuthenticator{})
	caller := identity.Caller{Role: "DOCTOR", ID: 9, Token: "tok"}

	require.NoError(t, service.SendChatNotification("Hello", "PATIENT", 1, "PRIVATE", 101, caller))
	require.NoError(t, service.SendChatNotification("For someone else", "PATIENT", 2, "PRIVATE", 102, caller))

	mine, err := service.FindAllChatNotificationsByRecipient("PATIENT", 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.EncryptedString("Hello"), mine[0].Message)

	require.NoError(t, service.DeleteAllChatNotifications("PATIENT", 1))

	mine, err = service.FindAllChatNotificationsByRecipient("PATIENT", 1)
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := service.FindAllChatNotificationsByRecipient("PATIENT", 2)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestDeleteByIDEnforcesOwnership(t *testing.T) {
	setupTestDB(t)

	validator := &fakeValidator{recipientValid: true, chatValid: true}
	service := NewNotificationService(validator, &fakeAuthenticator{})
	sender := identity.Caller{Role: "DOCTOR", ID: 9, Token: "tok"}

	require.NoError(t, service.SendChatNotification("Hello", "PATIENT", 1, "PRIVATE", 101, sender))

	records, err := service.FindAllChatNotificationsByRecipient("PATIENT", 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	id := records[0].ID

	// the sender does not own the record; only the recipient does
	err = service.DeleteChatNotification(id, sender)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	owner := identity.Caller{Role: "PATIENT", ID: 1, Token: "tok"}
	require.NoError(t, service.DeleteChatNotification(id, owner))

	err = service.DeleteChatNotification(id, owner)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAuthenticateDelegates(t *testing.T) {
	expected := &identity.Caller{Role: "PATIENT", ID: 1, Token: "tok"}
	service := NewNotificationService(&fakeValidator{}, &fakeAuthenticator{caller: expected})

	assert.Equal(t, expected, service.Authenticate("Bearer tok"))

	service = NewNotificationService(&fakeValidator{}, &fakeAuthenticator{})
	assert.Nil(t, service.Authenticate("Bearer tok"))
}
