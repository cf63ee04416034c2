package models

import (
	"github.com/sessionly/sessionly/internal/crypto"
)

var encryptor *crypto.Encryptor

// InitEncryption initializes the at-rest encryptor for the models package.
// Must be called before any database operations involving therapy text.
func InitEncryption(encryptionKey string) error {
	var err error
	encryptor, err = crypto.NewEncryptor(encryptionKey)
	return err
}

// encryptField encrypts a field in place when an encryptor is configured.
// A nil encryptor leaves values untouched so tests can run without a key.
func encryptField(s *string) error {
	if encryptor == nil || *s == "" {
		return nil
	}
	out, err := encryptor.Encrypt(*s)
	if err != nil {
		return err
	}
	*s = out
	return nil
}

func decryptField(s *string) error {
	if encryptor == nil || *s == "" {
		return nil
	}
	out, err := encryptor.Decrypt(*s)
	if err != nil {
		return err
	}
	*s = out
	return nil
}
