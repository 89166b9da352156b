// internal/api/registries.go
package api

import (
	"context"
	"net/http"

	"mcp-diet-registry/internal/models"
)

// FetchRegistries downloads every dietary-log registry with its foods
// populated. It is the data source of an export run.
func (c *Client) FetchRegistries(ctx context.Context) ([]models.RegistryEntry, error) {
	var entries []models.RegistryEntry
	if err := c.do(ctx, http.MethodGet, "registroDietetico/exports", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
