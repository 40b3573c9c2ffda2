package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"mergington/internal/activities/models"
)

//go:embed seed_schema.json
var seedSchema []byte

type seedFileActivity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// LoadSeedFile replaces the default catalog with one read from disk. The file
// uses the same shape as the GET /activities response.
func LoadSeedFile(ctx context.Context, s *InMemory, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	return LoadSeed(ctx, s, raw)
}

// LoadSeed validates raw against the catalog schema and inserts every entry.
func LoadSeed(ctx context.Context, s *InMemory, raw []byte) error {
	if err := validateSeed(raw); err != nil {
		return err
	}

	var catalog map[string]seedFileActivity
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}

	for _, name := range slices.Sorted(maps.Keys(catalog)) {
		entry := catalog[name]
		a, err := models.NewActivity(name, entry.Description, entry.Schedule, entry.MaxParticipants, entry.Participants)
		if err != nil {
			return fmt.Errorf("seed %q: %w", name, err)
		}
		if err := s.Create(ctx, a); err != nil {
			return fmt.Errorf("seed %q: %w", name, err)
		}
	}
	return nil
}

func validateSeed(raw []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(seedSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("seed validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("seed validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
