// internal/api/admin.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"mcp-diet-registry/internal/models"
)

var (
	ErrUnknownEditOption = errors.New("unknown edit option")
	ErrInvalidLevel      = errors.New("pyramid level out of range")
	ErrNotConfigured     = errors.New("option document not found")
)

func (c *Client) GetEditOptions(ctx context.Context) (*models.EditOptions, error) {
	var docs []models.EditOptions
	if err := c.do(ctx, http.MethodGet, "opcionesEdicion", nil, &docs); err != nil {
		return nil, fmt.Errorf("failed to get edit options: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNotConfigured
	}
	return &docs[0], nil
}

// SetEditOption switches one of the editable form sections on or off.
func (c *Client) SetEditOption(ctx context.Context, field string, value bool) error {
	if !isEditOption(field) {
		return fmt.Errorf("%w: %q", ErrUnknownEditOption, field)
	}
	body := map[string]bool{field: value}
	if err := c.do(ctx, http.MethodPatch, "opcionesEdicion", body, nil); err != nil {
		return fmt.Errorf("failed to update edit option %s: %w", field, err)
	}
	return nil
}

func isEditOption(field string) bool {
	for _, f := range models.EditOptionFields {
		if f == field {
			return true
		}
	}
	return false
}

// GetFreeRegistry reports whether participants may register freely.
func (c *Client) GetFreeRegistry(ctx context.Context) (bool, error) {
	var docs []models.RegistryOptions
	if err := c.do(ctx, http.MethodGet, "opcionesRegistro", nil, &docs); err != nil {
		return false, fmt.Errorf("failed to get registry options: %w", err)
	}
	if len(docs) == 0 {
		return false, nil
	}
	return docs[0].RegistroLibre, nil
}

// ToggleFreeRegistry flips the free-registry switch and returns the new value.
func (c *Client) ToggleFreeRegistry(ctx context.Context) (bool, error) {
	current, err := c.GetFreeRegistry(ctx)
	if err != nil {
		return false, err
	}
	next := !current
	body := models.RegistryOptions{RegistroLibre: next}
	if err := c.do(ctx, http.MethodPatch, "opcionesRegistro", body, nil); err != nil {
		return current, fmt.Errorf("failed to update registry options: %w", err)
	}
	return next, nil
}

func (c *Client) ListPyramidLevels(ctx context.Context) ([]models.PyramidLevel, error) {
	var levels []models.PyramidLevel
	if err := c.do(ctx, http.MethodGet, "piramide", nil, &levels); err != nil {
		return nil, fmt.Errorf("failed to list pyramid levels: %w", err)
	}
	return levels, nil
}

type pyramidBody struct {
	Level string `json:"nivel"`
	URL   string `json:"url"`
}

// UpsertPyramidLevel updates the level's image when the level already
// exists and creates it otherwise. It reports whether a level was created.
func (c *Client) UpsertPyramidLevel(ctx context.Context, level int, url string) (bool, error) {
	if level < models.MinPyramidLevel || level > models.MaxPyramidLevel {
		return false, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	levels, err := c.ListPyramidLevels(ctx)
	if err != nil {
		return false, err
	}

	body := pyramidBody{Level: strconv.Itoa(level), URL: url}
	for _, l := range levels {
		if l.Level != body.Level {
			continue
		}
		if err := c.do(ctx, http.MethodPatch, "piramide/"+l.ID, body, nil); err != nil {
			return false, fmt.Errorf("failed to update pyramid level %d: %w", level, err)
		}
		return false, nil
	}

	if err := c.do(ctx, http.MethodPost, "piramide", body, nil); err != nil {
		return false, fmt.Errorf("failed to create pyramid level %d: %w", level, err)
	}
	return true, nil
}
