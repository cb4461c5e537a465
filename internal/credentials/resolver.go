// Package credentials resolves the provider API key to use for an
// LLM request from the several places a caller may supply one.
package credentials

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"agentdeck/internal/auth"
	"agentdeck/internal/database"
	"agentdeck/internal/metrics"
	"agentdeck/internal/models"
)

// Resolution sources, in precedence order.
const (
	SourceAuthorization = "authorization_header"
	SourceHeader        = "x_api_key_header"
	SourceQuery         = "api_key_query"
	SourceStored        = "stored_key"
)

// ErrNoAPIKey is returned when no source yields a key. The message
// enumerates every place a caller could have provided one.
var ErrNoAPIKey = errors.New("No API key provided. Please provide via Authorization header, x-api-key header, api_key query parameter, or configure one in settings.")

// Credential is a resolved provider key and where it came from.
type Credential struct {
	Key    string
	Source string
}

// Resolver picks the API key for a request. Per-request keys from the
// Authorization header, the x-api-key header, or the api_key query
// parameter win, in that order, over a key stored for the caller's
// account. Anonymous callers fall back to the shared default account's
// stored key.
type Resolver struct {
	keys *database.APIKeyRepo
	auth *auth.Service
}

// NewResolver creates a resolver.
func NewResolver(keys *database.APIKeyRepo, authSvc *auth.Service) *Resolver {
	return &Resolver{keys: keys, auth: authSvc}
}

// Resolve finds the key for the given request, or ErrNoAPIKey.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) (Credential, error) {
	if header := req.Header.Get("Authorization"); header != "" {
		if key := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); key != "" && key != header {
			return r.resolved(Credential{Key: key, Source: SourceAuthorization}), nil
		}
	}

	if key := strings.TrimSpace(req.Header.Get("x-api-key")); key != "" {
		return r.resolved(Credential{Key: key, Source: SourceHeader}), nil
	}

	if key := strings.TrimSpace(req.URL.Query().Get("api_key")); key != "" {
		return r.resolved(Credential{Key: key, Source: SourceQuery}), nil
	}

	userID := models.DefaultUserID
	if user := r.auth.UserFromSession(ctx, req.Header.Get(auth.TokenHeader)); user != nil {
		userID = user.ID
	}
	provider := req.URL.Query().Get("provider")
	if provider == "" {
		provider = models.DefaultProvider
	}

	stored, err := r.keys.GetActive(ctx, userID, provider)
	if err != nil {
		if errors.Is(err, database.ErrAPIKeyNotFound) {
			return Credential{}, ErrNoAPIKey
		}
		return Credential{}, err
	}
	return r.resolved(Credential{Key: stored.KeyValue, Source: SourceStored}), nil
}

func (r *Resolver) resolved(cred Credential) Credential {
	metrics.Global().CredentialResolutions.WithLabelValues(cred.Source).Inc()
	return cred
}
