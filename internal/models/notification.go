package models

import "time"

// The three notification kinds live in disjoint tables. They share the
// recipient fields but are related only through the Recipient accessor,
// which the generic store and access guard are parameterized over.

type ChatNotification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Message       EncryptedString `gorm:"not null" json:"message"`
	RecipientType EncryptedString `gorm:"not null;index" json:"recipient_type"`
	RecipientID   EncryptedInt64  `gorm:"not null;index" json:"recipient_id"`
	ChatType      EncryptedString `json:"chat_type"`
	ChatID        EncryptedInt64  `json:"chat_id"`
}

type ConsentRequestNotification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Message          EncryptedString `gorm:"not null" json:"message"`
	RecipientType    EncryptedString `gorm:"not null;index" json:"recipient_type"`
	RecipientID      EncryptedInt64  `gorm:"not null;index" json:"recipient_id"`
	ConsentRequestID EncryptedInt64  `json:"consent_request_id"`
}

type OneWayNotification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Message       EncryptedString `gorm:"not null" json:"message"`
	RecipientType EncryptedString `gorm:"not null;index" json:"recipient_type"`
	RecipientID   EncryptedInt64  `gorm:"not null;index" json:"recipient_id"`
}

func (n ChatNotification) Recipient() (string, int64) {
	return string(n.RecipientType), int64(n.RecipientID)
}

func (n ConsentRequestNotification) Recipient() (string, int64) {
	return string(n.RecipientType), int64(n.RecipientID)
}

func (n OneWayNotification) Recipient() (string, int64) {
	return string(n.RecipientType), int64(n.RecipientID)
}
