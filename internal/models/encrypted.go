package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/medrelay-dev/medrelay/internal/crypto"
)

// EncryptedString holds plaintext in memory and ciphertext at rest. The
// Valuer/Scanner pair is the encryption boundary: gorm runs both column
// values and query parameters through it, so encrypted-equality WHERE
// clauses work against the deterministic cipher.
type EncryptedString string

func (s EncryptedString) Value() (driver.Value, error) {
	return crypto.EncryptString(string(s)), nil
}

func (s *EncryptedString) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}

	stored, err := storedText(src)
	if err != nil {
		return err
	}

	plain, err := crypto.DecryptString(stored)
	if err != nil {
		return err
	}

	*s = EncryptedString(plain)
	return nil
}

// EncryptedInt64 is the integer counterpart: stored as the ciphertext of
// the canonical decimal text.
type EncryptedInt64 int64

func (v EncryptedInt64) Value() (driver.Value, error) {
	return crypto.EncryptInt64(int64(v)), nil
}

func (v *EncryptedInt64) Scan(src interface{}) error {
	if src == nil {
		*v = 0
		return nil
	}

	stored, err := storedText(src)
	if err != nil {
		return err
	}

	plain, err := crypto.DecryptInt64(stored)
	if err != nil {
		return err
	}

	*v = EncryptedInt64(plain)
	return nil
}

func storedText(src interface{}) (string, error) {
	switch s := src.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("unsupported encrypted column type %T", src)
	}
}
