package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inkwell-labs/grainforge/internal/grain"
)

// registerGrainFlags defines the grain configuration flags on cmd and binds
// them under the given viper section. Defaults come from grain.DefaultConfig
// so commands stay in sync with the library.
func registerGrainFlags(cmd *cobra.Command, section string) {
	def := grain.DefaultConfig()

	cmd.Flags().Bool("enabled", def.Enabled, "Master grain switch")
	cmd.Flags().Float64("amount", def.Amount, "Overall grain strength (0-100)")
	cmd.Flags().String("grain-size", string(def.Size), "Grain size (fine, normal, coarse)")
	cmd.Flags().String("algorithm", string(def.Algorithm), "Noise algorithm (fbm, blue-noise)")
	cmd.Flags().Int("octaves", def.Octaves, "Number of fbm octaves")
	cmd.Flags().Float64("lacunarity", def.Lacunarity, "Per-octave frequency multiplier")
	cmd.Flags().Float64("gain", def.Gain, "Per-octave amplitude multiplier")
	cmd.Flags().Bool("chroma", def.Chroma.Enabled, "Enable color-noise tint channels")
	cmd.Flags().Float64("chroma-intensity", def.Chroma.Intensity, "Chroma blend strength (0-1)")
	cmd.Flags().String("curve", string(def.IntensityCurve), "Intensity curve (linear, s-curve)")
	cmd.Flags().Float64("protect-shadows", def.ProtectShadows, "Grain suppression in dark regions (0-1)")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{section + ".enabled", "enabled"},
		{section + ".amount", "amount"},
		{section + ".grain_size", "grain-size"},
		{section + ".algorithm", "algorithm"},
		{section + ".octaves", "octaves"},
		{section + ".lacunarity", "lacunarity"},
		{section + ".gain", "gain"},
		{section + ".chroma", "chroma"},
		{section + ".chroma_intensity", "chroma-intensity"},
		{section + ".curve", "curve"},
		{section + ".protect_shadows", "protect-shadows"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, cmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

// grainConfigFromViper assembles a grain.Config from a bound section.
// Validation happens inside the synthesizer, not here.
func grainConfigFromViper(section string) grain.Config {
	return grain.Config{
		Enabled:    viper.GetBool(section + ".enabled"),
		Amount:     viper.GetFloat64(section + ".amount"),
		Size:       grain.Size(viper.GetString(section + ".grain_size")),
		Algorithm:  grain.Algorithm(viper.GetString(section + ".algorithm")),
		Octaves:    viper.GetInt(section + ".octaves"),
		Lacunarity: viper.GetFloat64(section + ".lacunarity"),
		Gain:       viper.GetFloat64(section + ".gain"),
		Chroma: grain.ChromaConfig{
			Enabled:   viper.GetBool(section + ".chroma"),
			Intensity: viper.GetFloat64(section + ".chroma_intensity"),
		},
		IntensityCurve: grain.IntensityCurve(viper.GetString(section + ".curve")),
		ProtectShadows: viper.GetFloat64(section + ".protect_shadows"),
	}
}
