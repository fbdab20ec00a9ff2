package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPinTooShort        = errors.New("device pin must be at least 4 characters long")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPairingDisabled    = errors.New("device pairing is not enabled")
)

const (
	DeviceSubject = "device"
	minPinLength  = 4
	pinHashCost   = 12
)

// DeviceCredential guards the API of a paired device. Only the bcrypt hash
// of the pin is kept in memory.
type DeviceCredential struct {
	PinHash string `json:"-"`
}

func NewDeviceCredential(pin string) (*DeviceCredential, error) {
	pin = strings.TrimSpace(pin)
	if utf8.RuneCountInString(pin) < minPinLength {
		return nil, ErrPinTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), pinHashCost)
	if err != nil {
		return nil, err
	}
	return &DeviceCredential{PinHash: string(hash)}, nil
}

func (c *DeviceCredential) CheckPin(pin string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(c.PinHash), []byte(strings.TrimSpace(pin))); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
