// Package identity talks to the external auth provider that owns user
// credentials. The API only needs account cleanup on user removal.
package identity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/homenest/homenest-api/pkg/logger"
)

type Provider interface {
	DeleteUser(ctx context.Context, authUID string) error
}

// HTTPProvider calls the identity provider's admin API.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPProvider) DeleteUser(ctx context.Context, authUID string) error {
	url := fmt.Sprintf("%s/v1/accounts/%s", p.baseURL, authUID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build identity delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity delete call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("identity delete returned status %d", resp.StatusCode)
	}
	return nil
}

// DevProvider logs instead of calling out. Used when no provider is
// configured.
type DevProvider struct{}

func NewDevProvider() *DevProvider {
	return &DevProvider{}
}

func (p *DevProvider) DeleteUser(ctx context.Context, authUID string) error {
	logger.InfoContext(ctx, "DEV identity provider: would delete account", "auth_uid", authUID)
	return nil
}
