package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"time"
)

// NonceService issues and verifies the per-action tokens the CSV export
// endpoints demand in addition to the role gate. A nonce is an HMAC over the
// action name and the issue day, so it cannot be forged without the secret
// and goes stale on its own.
type NonceService struct {
	secret []byte
	now    func() time.Time
}

func NewNonceService(secret string) *NonceService {
	return &NonceService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (s *NonceService) Issue(action string) string {
	return s.compute(action, s.now().Format("2006-01-02"))
}

// Verify accepts nonces issued today or yesterday so a report page opened
// before midnight can still export after it.
func (s *NonceService) Verify(action, nonce string) bool {
	if nonce == "" {
		return false
	}
	now := s.now()
	days := []string{
		now.Format("2006-01-02"),
		now.AddDate(0, 0, -1).Format("2006-01-02"),
	}
	for _, day := range days {
		if hmac.Equal([]byte(nonce), []byte(s.compute(action, day))) {
			return true
		}
	}
	return false
}

func (s *NonceService) compute(action, day string) string {
	mac := hmac.New(sha256.New, s.secret)
	io.WriteString(mac, action)
	io.WriteString(mac, "|")
	io.WriteString(mac, day)
	return hex.EncodeToString(mac.Sum(nil))
}
