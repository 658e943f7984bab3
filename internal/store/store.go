package store

import (
	"errors"
	"fmt"

	"github.com/medrelay-dev/medrelay/db"
	"github.com/medrelay-dev/medrelay/internal/apperrors"
	"github.com/medrelay-dev/medrelay/internal/identity"
	"github.com/medrelay-dev/medrelay/internal/models"
	"gorm.io/gorm"
)

// Owned is the common surface of the three notification variants. The
// generic operations below are parameterized over it instead of sharing a
// table or an embedded base struct.
type Owned interface {
	models.ChatNotification | models.ConsentRequestNotification | models.OneWayNotification

	Recipient() (string, int64)
}

// Insert persists the record, encrypting sensitive columns on the way down,
// and fills in the store-assigned id.
func Insert[T Owned](record *T) error {
	if err := db.DB.Create(record).Error; err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// FindByID loads one record by id. A missing row maps to
// apperrors.ErrNotFound; a row that fails to decrypt surfaces its cipher
// error untouched.
func FindByID[T Owned](id uint) (*T, error) {
	var record T

	if err := db.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load notification: %w", err)
	}

	return &record, nil
}

// FindByRecipient returns every record addressed to the given principal in
// insertion order. The parameters pass through the same encrypted column
// types as the stored values, so the comparison happens on ciphertext.
func FindByRecipient[T Owned](recipientType string, recipientID int64) ([]T, error) {
	var records []T

	err := db.DB.
		Where("recipient_type = ? AND recipient_id = ?",
			models.EncryptedString(recipientType), models.EncryptedInt64(recipientID)).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return records, nil
}

// Delete removes the given record by id. Deleting an already-absent record
// is not an error.
func Delete[T Owned](record *T) error {
	if err := db.DB.Delete(record).Error; err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

// DeleteByRecipient removes every record addressed to the principal as a
// single DELETE statement, so a failure never leaves a partial set deleted.
func DeleteByRecipient[T Owned](recipientType string, recipientID int64) error {
	var zero T

	err := db.DB.
		Where("recipient_type = ? AND recipient_id = ?",
			models.EncryptedString(recipientType), models.EncryptedInt64(recipientID)).
		Delete(&zero).Error
	if err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	return nil
}

// FetchAndValidate is the ownership gate: every per-id read or delete must
// go through it. It loads the record and rejects with
// apperrors.ErrUnauthorized unless the caller is exactly the stored
// recipient.
func FetchAndValidate[T Owned](id uint, caller identity.Caller) (*T, error) {
	record, err := FindByID[T](id)
	if err != nil {
		return nil, err
	}

	recipientType, recipientID := (*record).Recipient()
	if recipientType != caller.Role || recipientID != caller.ID {
		return nil, apperrors.ErrUnauthorized
	}

	return record, nil
}

// DeleteSecurely validates ownership, then deletes.
func DeleteSecurely[T Owned](id uint, caller identity.Caller) error {
	record, err := FetchAndValidate[T](id, caller)
	if err != nil {
		return err
	}

	return Delete(record)
}
