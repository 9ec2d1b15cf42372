package merchandising

import (
	"time"

	"github.com/shopadmin/backend/internal/domain/merchandising"
)

// KindSettings configures the board for one display kind
type KindSettings struct {
	MaxSlots int
	Policy   merchandising.ResolutionPolicy
}

// Settings configures HomepageDisplayService
type Settings struct {
	Kinds          map[merchandising.DisplayKind]KindSettings
	IdempotencyTTL time.Duration
}

// DefaultSettings returns nine slots per kind, eviction for categories and
// displacement for manufacturers
func DefaultSettings() Settings {
	return Settings{
		Kinds: map[merchandising.DisplayKind]KindSettings{
			merchandising.DisplayKindCategories: {
				MaxSlots: merchandising.DefaultMaxSlots,
				Policy:   merchandising.PolicyEvict,
			},
			merchandising.DisplayKindManufacturers: {
				MaxSlots: merchandising.DefaultMaxSlots,
				Policy:   merchandising.PolicyDisplace,
			},
		},
		IdempotencyTTL: 10 * time.Minute,
	}
}

func (s Settings) forKind(kind merchandising.DisplayKind) (KindSettings, error) {
	ks, ok := s.Kinds[kind]
	if !ok {
		return KindSettings{}, merchandising.ErrUnknownDisplayKind
	}
	return ks, nil
}
