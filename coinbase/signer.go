package coinbase

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/etnz/coinfolio"
	"github.com/shopspring/decimal"
)

// Header names of the exchange authentication.
const (
	HeaderSign       = "CB-ACCESS-SIGN"
	HeaderTimestamp  = "CB-ACCESS-TIMESTAMP"
	HeaderKey        = "CB-ACCESS-KEY"
	HeaderPassphrase = "CB-ACCESS-PASSPHRASE"
)

// Signer computes the authentication headers of a request.
type Signer struct {
	key        string
	passphrase string
	secret     []byte // decoded
}

// NewSigner validates the credentials and decodes the secret.
func NewSigner(c Credentials) (*Signer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	secret, err := base64.StdEncoding.DecodeString(c.Secret)
	if err != nil {
		return nil, coinfolio.E(coinfolio.KindConfiguration, "credentials", fmt.Errorf("secret is not base64: %w", err))
	}
	return &Signer{key: c.Key, passphrase: c.Passphrase, secret: secret}, nil
}

// Timestamp formats t as the exchange expects it: seconds since the epoch,
// with sub-second precision, e.g "1612345678.123456".
func Timestamp(t time.Time) string {
	return decimal.New(t.UnixMicro(), -6).String()
}

// Signature returns base64(HMAC-SHA256(secret, timestamp+method+requestPath+body)).
//
// requestPath is the path including the query string, not the full URL.
func (s *Signer) Signature(timestamp, method, requestPath, body string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(timestamp))
	mac.Write([]byte(method))
	mac.Write([]byte(requestPath))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Sign returns the headers authenticating a request issued at now.
func (s *Signer) Sign(method, requestPath, body string, now time.Time) http.Header {
	timestamp := Timestamp(now)
	h := make(http.Header)
	h.Set(HeaderSign, s.Signature(timestamp, method, requestPath, body))
	h.Set(HeaderTimestamp, timestamp)
	h.Set(HeaderKey, s.key)
	h.Set(HeaderPassphrase, s.passphrase)
	h.Set("Content-Type", "application/json")
	return h
}

// SignRequest sets the authentication headers on r. The body, if any, is read
// and restored.
func (s *Signer) SignRequest(r *http.Request, now time.Time) error {
	var body []byte
	if r.Body != nil && r.Body != http.NoBody {
		var err error
		body, err = io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			return fmt.Errorf("cannot read request body: %w", err)
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
	}
	for k, v := range s.Sign(r.Method, r.URL.RequestURI(), string(body), now) {
		r.Header[k] = v
	}
	return nil
}
