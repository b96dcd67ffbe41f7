package coinbase

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// signingTransport authenticates every request going through it.
//
// Requests are signed at the last moment, after waiting for the rate limiter,
// so that the timestamp is fresh when the request leaves.
type signingTransport struct {
	base    http.RoundTripper
	signer  *Signer
	limiter *rate.Limiter // nil for unlimited
	now     func() time.Time
	log     zerolog.Logger
}

func (t *signingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	if err := t.signer.SignRequest(req, t.now()); err != nil {
		return nil, err
	}

	start := t.now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", t.now().Sub(start)).
		Msg("request")
	return resp, nil
}

// newHTTPClient returns an http.Client whose requests are signed and rate limited.
func newHTTPClient(base http.RoundTripper, signer *Signer, limiter *rate.Limiter, now func() time.Time, log zerolog.Logger) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	client := new(http.Client)
	client.Transport = &signingTransport{base: base, signer: signer, limiter: limiter, now: now, log: log}
	return client
}
