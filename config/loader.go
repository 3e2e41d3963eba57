// Package config loads the deployment property file into the raw bag the
// generator consumes.
package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// LoadPropertyBag reads the YAML property file named by the bound
// --properties flag. Unlike an optional deployer config, the bag is required
// input: a missing file is an error, never a silent default.
func LoadPropertyBag(logger zerolog.Logger, v *viper.Viper) (map[string]any, error) {
	path := v.GetString("properties")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read property file %s: %w", path, err)
	}

	bag := make(map[string]any)
	if err := yaml.Unmarshal(data, &bag); err != nil {
		return nil, fmt.Errorf("failed to unmarshal property file %s: %w", path, err)
	}
	logger.Info().Str("properties_path", path).Msg("Property file loaded.")

	// Command-line overrides for the properties that change between runs.
	if tag := v.GetString("container-tag"); tag != "" {
		bag["containerTag"] = tag
		logger.Info().Str("containerTag", tag).Msg("Container tag overridden from command line.")
	}
	if region := v.GetString("region"); region != "" {
		bag["region"] = region
		logger.Info().Str("region", region).Msg("Region overridden from command line.")
	}
	if release := v.GetString("release-tag"); release != "" {
		bag["datashareGitReleaseTag"] = release
		logger.Info().Str("datashareGitReleaseTag", release).Msg("Release tag overridden from command line.")
	}

	return bag, nil
}
