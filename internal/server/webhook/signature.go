package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/decolog/decolog/internal/shared"
)

// SignatureHeader is the HTTP header the checkout provider signs
// webhook deliveries with.
const SignatureHeader = "Deco-Signature"

// Tolerance is the maximum accepted age of a signed payload. Deliveries
// with an older timestamp are rejected to limit replay of captured
// requests.
const Tolerance = 5 * time.Minute

// Signature is the parsed form of a Deco-Signature header value,
// e.g. "t=1700000000,v1=5257a8...".
type Signature struct {
	Timestamp time.Time
	MAC       string
}

// ParseSignature splits a Deco-Signature header value into its timestamp
// and hex MAC parts.
func ParseSignature(header string) (*Signature, error) {
	var ts int64
	var mac string

	for _, part := range strings.Split(header, ",") {
		k, v, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad timestamp", shared.ErrInvalidSignature)
			}
			ts = n
		case "v1":
			mac = v
		}
	}

	if ts == 0 || mac == "" {
		return nil, fmt.Errorf("%w: missing parts", shared.ErrInvalidSignature)
	}

	return &Signature{Timestamp: time.Unix(ts, 0), MAC: mac}, nil
}

// Sign computes the hex HMAC-SHA256 of "<t>.<body>" with the given
// secret. The provider signs deliveries this way, and tests use it to
// build valid headers.
func Sign(secret []byte, body []byte, t time.Time) string {
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%d.", t.Unix())
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignatureHeaderValue renders a complete Deco-Signature header for the
// given body and time.
func SignatureHeaderValue(secret []byte, body []byte, t time.Time) string {
	return fmt.Sprintf("t=%d,v1=%s", t.Unix(), Sign(secret, body, t))
}

// Verify checks a delivery against its Deco-Signature header. It returns
// shared.ErrInvalidSignature when the header is malformed, the MAC does
// not match, or the timestamp falls outside the tolerance window.
func Verify(secret []byte, body []byte, header string, now time.Time) error {
	sig, err := ParseSignature(header)
	if err != nil {
		return err
	}

	age := now.Sub(sig.Timestamp)
	if age > Tolerance || age < -Tolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", shared.ErrInvalidSignature)
	}

	want := Sign(secret, body, sig.Timestamp)
	if !hmac.Equal([]byte(want), []byte(sig.MAC)) {
		return fmt.Errorf("%w: digest mismatch", shared.ErrInvalidSignature)
	}

	return nil
}
