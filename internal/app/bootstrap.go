package app

import (
	"regexp"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/glueckskekse/kasse/internal/domain"
	"github.com/glueckskekse/kasse/internal/kvstore"
)

const (
	defaultParentPin = "2839"
	keyParentPinHash = "parent_pin_hash"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// ensureParentPin seeds the hashed default PIN on first run so the
// admin area is reachable out of the box.
func (a *Application) ensureParentPin() {
	var hash string
	found, err := a.kv.Get(kvstore.BucketSettings, keyParentPinHash, &hash)
	if err != nil {
		zap.S().Errorf("failed to read parent PIN: %v", err)
		return
	}
	if found && hash != "" {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultParentPin), bcrypt.DefaultCost)
	if err != nil {
		zap.S().Errorf("failed to hash default parent PIN: %v", err)
		return
	}
	if err := a.kv.Put(kvstore.BucketSettings, keyParentPinHash, string(hashed)); err != nil {
		zap.S().Errorf("failed to store default parent PIN: %v", err)
		return
	}
	zap.L().Warn("initialized default parent PIN, change it in the admin settings")
}

// CheckPin verifies a PIN attempt against the stored hash.
func (a *Application) CheckPin(pin string) bool {
	var hash string
	found, err := a.kv.Get(kvstore.BucketSettings, keyParentPinHash, &hash)
	if err != nil || !found {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}

// SetPin replaces the parent PIN. PINs are exactly four digits.
func (a *Application) SetPin(pin string) error {
	if !pinPattern.MatchString(pin) {
		return domain.Validationf("pin", "PIN must be exactly 4 digits")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := a.kv.Put(kvstore.BucketSettings, keyParentPinHash, string(hashed)); err != nil {
		return &domain.PersistenceError{Op: "store parent PIN", Err: err}
	}
	return nil
}
