package booking

import "math/rand"

const (
	referenceLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	referenceDigits  = "0123456789"
)

// NewBookingReference generates a human-readable reference of two uppercase
// letters followed by four digits, e.g. "KX4921". References are not checked
// for uniqueness; the document id is the primary key and collisions on the
// display reference are tolerated.
func NewBookingReference() string {
	buf := make([]byte, 6)
	for i := 0; i < 2; i++ {
		buf[i] = referenceLetters[rand.Intn(len(referenceLetters))]
	}
	for i := 2; i < 6; i++ {
		buf[i] = referenceDigits[rand.Intn(len(referenceDigits))]
	}
	return string(buf)
}
