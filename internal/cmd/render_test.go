package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/grainforge/internal/grain"
)

func TestVariantPath(t *testing.T) {
	tests := []struct {
		name string
		out  string
		seed int64
		want string
	}{
		{
			name: "plain png",
			out:  "grain.png",
			seed: 1337,
			want: "grain_seed1337.png",
		},
		{
			name: "nested path",
			out:  "out/wallpapers/grain.png",
			seed: 7,
			want: "out/wallpapers/grain_seed7.png",
		},
		{
			name: "negative seed",
			out:  "grain.png",
			seed: -12,
			want: "grain_seed-12.png",
		},
		{
			name: "missing extension",
			out:  "grain",
			seed: 2,
			want: "grain_seed2.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, variantPath(tt.out, tt.seed))
		})
	}
}

func TestGrainConfigFromViperDefaults(t *testing.T) {
	// Flag binding happens in the package init; with no flags set, both
	// sections must resolve to the library defaults.
	for _, section := range []string{"render", "hash"} {
		cfg := grainConfigFromViper(section)
		require.Equal(t, grain.DefaultConfig(), cfg, "section %s", section)
		require.NoError(t, cfg.Validate())
	}
}
