package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNonceIssueAndVerify(t *testing.T) {
	svc := NewNonceService("nonce-secret")

	nonce := svc.Issue("export-report")
	assert.NotEmpty(t, nonce)
	assert.True(t, svc.Verify("export-report", nonce))
}

func TestNonceRejectsForgeries(t *testing.T) {
	svc := NewNonceService("nonce-secret")
	nonce := svc.Issue("export-report")

	assert.False(t, svc.Verify("export-report", ""))
	assert.False(t, svc.Verify("export-report", "deadbeef"))
	assert.False(t, svc.Verify("other-action", nonce), "nonce is bound to its action")

	otherSvc := NewNonceService("another-secret")
	assert.False(t, otherSvc.Verify("export-report", nonce))
}

func TestNonceSurvivesMidnight(t *testing.T) {
	svc := NewNonceService("nonce-secret")

	issuedAt := time.Date(2026, time.August, 27, 23, 50, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }
	nonce := svc.Issue("export-report")

	svc.now = func() time.Time { return issuedAt.Add(30 * time.Minute) } // past midnight
	assert.True(t, svc.Verify("export-report", nonce))

	svc.now = func() time.Time { return issuedAt.Add(48 * time.Hour) }
	assert.False(t, svc.Verify("export-report", nonce), "two-day-old nonce is stale")
}
