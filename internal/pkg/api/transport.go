package api

import (
	"context"
	"net/http"
)

type tokenKey struct{}

// WithToken returns a context carrying the access token for one backend
// call. Requests built from a context without a token go out unmodified.
func WithToken(ctx context.Context, accessToken string) context.Context {
	if accessToken == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, accessToken)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// bearerTransport injects the Authorization header on every outbound
// request that carries a token on its context.
type bearerTransport struct {
	base http.RoundTripper
}

func newBearerTransport(base http.RoundTripper) *bearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &bearerTransport{base: base}
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := tokenFromContext(req.Context()); token != "" && req.Header.Get("Authorization") == "" {
		// RoundTrippers must not mutate the caller's request.
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}
