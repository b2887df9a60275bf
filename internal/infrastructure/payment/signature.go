package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer produces and checks checkout signatures:
// hex(HMAC-SHA256(secret, orderID + "|" + paymentID)).
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

func (s *Signer) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time. Signatures are compared as the
// lowercase hex the gateway sends; any other casing fails.
func (s *Signer) Verify(orderID, paymentID, signature string) bool {
	expected := s.Sign(orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
