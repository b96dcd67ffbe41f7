package coinbase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/etnz/coinfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = base64.StdEncoding.EncodeToString([]byte("a-very-secret-key"))

func testCredentials() Credentials {
	return Credentials{Key: "key-1", Secret: testSecret, Passphrase: "pass-1"}
}

func newTestSigner(t *testing.T) *Signer {
	t.Helper()
	s, err := NewSigner(testCredentials())
	require.NoError(t, err)
	return s
}

func TestSignature_KnownVector(t *testing.T) {
	s := newTestSigner(t)

	mac := hmac.New(sha256.New, []byte("a-very-secret-key"))
	mac.Write([]byte("1612345678.5GET/accounts"))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, s.Signature("1612345678.5", "GET", "/accounts", ""))
}

func TestSignature_Deterministic(t *testing.T) {
	s := newTestSigner(t)
	a := s.Signature("1612345678.5", "GET", "/accounts", "")
	b := s.Signature("1612345678.5", "GET", "/accounts", "")
	assert.Equal(t, a, b)
}

func TestSignature_DependsOnEveryInput(t *testing.T) {
	s := newTestSigner(t)
	ref := s.Signature("1612345678.5", "GET", "/accounts", "")

	tests := []struct {
		name                    string
		timestamp, method, path string
		body                    string
	}{
		{"timestamp", "1612345678.6", "GET", "/accounts", ""},
		{"method", "1612345678.5", "POST", "/accounts", ""},
		{"path", "1612345678.5", "GET", "/accounts/1", ""},
		{"body", "1612345678.5", "GET", "/accounts", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, ref, s.Signature(tt.timestamp, tt.method, tt.path, tt.body))
		})
	}

	other, err := NewSigner(Credentials{Key: "key-1", Secret: base64.StdEncoding.EncodeToString([]byte("another")), Passphrase: "pass-1"})
	require.NoError(t, err)
	assert.NotEqual(t, ref, other.Signature("1612345678.5", "GET", "/accounts", ""), "secret")
}

func TestSign_Headers(t *testing.T) {
	s := newTestSigner(t)
	now := time.Unix(1612345678, 123456000)

	h := s.Sign("GET", "/accounts", "", now)

	assert.Equal(t, "1612345678.123456", h.Get(HeaderTimestamp))
	assert.Equal(t, "key-1", h.Get(HeaderKey))
	assert.Equal(t, "pass-1", h.Get(HeaderPassphrase))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, s.Signature("1612345678.123456", "GET", "/accounts", ""), h.Get(HeaderSign))
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Unix(1612345678, 0), "1612345678"},
		{time.Unix(1612345678, 500000000), "1612345678.5"},
		{time.Unix(1612345678, 123456789), "1612345678.123456"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Timestamp(tt.t))
	}
}

func TestSignRequest_UsesPathAndQuery(t *testing.T) {
	s := newTestSigner(t)
	now := time.Unix(1612345678, 0)
	req, err := http.NewRequest(http.MethodPost, "https://api.example.com/orders?status=done", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)

	require.NoError(t, s.SignRequest(req, now))

	assert.Equal(t, s.Signature("1612345678", "POST", "/orders?status=done", `{"a":1}`), req.Header.Get(HeaderSign))
	// body is still readable.
	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(body))
}

func TestNewSigner_MalformedSecret(t *testing.T) {
	_, err := NewSigner(Credentials{Key: "k", Secret: "not base64!", Passphrase: "p"})
	require.Error(t, err)
	assert.True(t, coinfolio.IsKind(err, coinfolio.KindConfiguration))
}
