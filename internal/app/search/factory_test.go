package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/mixtape/internal/infra/config"
)

func TestNewChainFromConfig(t *testing.T) {
	tests := []struct {
		name      string
		providers []config.ProviderConfig
		wantErr   bool
	}{
		{
			name:      "catalog and library",
			providers: []config.ProviderConfig{{Type: "catalog", DisplayName: "Demo"}, {Type: "library", DisplayName: "Disk", Settings: map[string]any{"dir": "/tmp"}}},
		},
		{
			name:    "no providers",
			wantErr: true,
		},
		{
			name:      "unsupported type",
			providers: []config.ProviderConfig{{Type: "spotify", DisplayName: "S"}},
			wantErr:   true,
		},
		{
			name:      "library without dir",
			providers: []config.ProviderConfig{{Type: "library", DisplayName: "Disk"}},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Search.Providers = tt.providers

			chain, err := NewChainFromConfig(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, chain.providers, len(tt.providers))
		})
	}
}
