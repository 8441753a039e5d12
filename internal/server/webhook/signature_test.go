package webhook

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/decolog/decolog/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_AcceptsFreshSignature(t *testing.T) {
	secret := []byte("whsec_test")
	body := []byte(`{"id":"evt_1"}`)
	now := time.Now()

	header := SignatureHeaderValue(secret, body, now)
	assert.NoError(t, Verify(secret, body, header, now))
}

func TestVerify_AcceptsSlightClockSkew(t *testing.T) {
	secret := []byte("whsec_test")
	body := []byte(`{"id":"evt_1"}`)
	now := time.Now()

	// Provider clock two minutes ahead of ours.
	header := SignatureHeaderValue(secret, body, now.Add(2*time.Minute))
	assert.NoError(t, Verify(secret, body, header, now))
}

func TestVerify_RejectsStaleTimestamp(t *testing.T) {
	secret := []byte("whsec_test")
	body := []byte(`{"id":"evt_1"}`)
	now := time.Now()

	header := SignatureHeaderValue(secret, body, now.Add(-Tolerance-time.Second))
	err := Verify(secret, body, header, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidSignature))
	assert.Contains(t, err.Error(), "tolerance")
}

func TestVerify_RejectsTamperedBody(t *testing.T) {
	secret := []byte("whsec_test")
	now := time.Now()

	header := SignatureHeaderValue(secret, []byte(`{"id":"evt_1"}`), now)
	err := Verify(secret, []byte(`{"id":"evt_2"}`), header, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidSignature))
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)
	now := time.Now()

	header := SignatureHeaderValue([]byte("whsec_other"), body, now)
	err := Verify([]byte("whsec_test"), body, header, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidSignature))
}

func TestVerify_RejectsMalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"empty", ""},
		{"no pairs", "nonsense"},
		{"missing mac", "t=1700000000"},
		{"missing timestamp", "v1=abc123"},
		{"bad timestamp", fmt.Sprintf("t=later,v1=%s", Sign([]byte("s"), nil, time.Now()))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify([]byte("whsec_test"), []byte("{}"), tt.header, time.Now())
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrInvalidSignature))
		})
	}
}

func TestParseSignature_IgnoresUnknownPairsAndSpaces(t *testing.T) {
	sig, err := ParseSignature("t=1700000000, v1=abc, v0=legacy")
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1700000000, 0), sig.Timestamp)
	assert.Equal(t, "abc", sig.MAC)
}
