// Package profiles persists the single local profile as a JSON document in
// the metadata table.
package profiles

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/timex"
)

type Store struct {
	meta  metadata.Repository
	clock timex.Clock
}

// NewStore stamps fresh profiles with clock; nil means the system clock.
func NewStore(meta metadata.Repository, clock timex.Clock) *Store {
	if clock == nil {
		clock = timex.SystemClock{}
	}
	return &Store{meta: meta, clock: clock}
}

// Load returns the stored profile, or a fresh one when nothing has been
// saved yet.
func (s *Store) Load(ctx context.Context) (*models.Profile, error) {
	raw, err := s.meta.Get(ctx, common.ProfileMetadataKey)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if raw == nil {
		return models.NewProfile(s.clock.Now()), nil
	}

	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

func (s *Store) Save(ctx context.Context, p *models.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.meta.Set(ctx, common.ProfileMetadataKey, b); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
