package utils

import (
	"fmt"
	"time"

	"qfifat.backend/pkg/crypto"
)

// GenerateOrderNumber builds a human-readable order number such as
// QF-20260831-3FA2C1. The random suffix keeps numbers unguessable.
func GenerateOrderNumber(prefix string, now time.Time) (string, error) {
	suffix, err := crypto.GenerateReference(3)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix), nil
}
