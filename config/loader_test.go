package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/illmade-knight/datashare-deploy/config"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProperties = `
gkeZone: "us-central1-a"
cloudRunDeployName: "ds-api"
containerTag: "v1"
region: "us-central1"
serviceAccountName: "ds-sa"
customCloudBuildSA: "cb-sa"
timeout: "600s"
datashareGitReleaseTag: "master"
useRuntimeConfigWaiter: false
`

func writeProperties(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "properties.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testProperties), 0644))
	return path
}

func TestLoadPropertyBag(t *testing.T) {
	v := viper.New()
	v.Set("properties", writeProperties(t))

	bag, err := config.LoadPropertyBag(zerolog.Nop(), v)
	require.NoError(t, err)

	assert.Equal(t, "ds-api", bag["cloudRunDeployName"])
	assert.Equal(t, "v1", bag["containerTag"])
	assert.Equal(t, false, bag["useRuntimeConfigWaiter"])
}

func TestLoadPropertyBagAppliesOverrides(t *testing.T) {
	v := viper.New()
	v.Set("properties", writeProperties(t))
	v.Set("container-tag", "v2")
	v.Set("region", "europe-west1")
	v.Set("release-tag", "0.7.2")

	bag, err := config.LoadPropertyBag(zerolog.Nop(), v)
	require.NoError(t, err)

	assert.Equal(t, "v2", bag["containerTag"])
	assert.Equal(t, "europe-west1", bag["region"])
	assert.Equal(t, "0.7.2", bag["datashareGitReleaseTag"])
}

func TestLoadPropertyBagMissingFile(t *testing.T) {
	v := viper.New()
	v.Set("properties", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := config.LoadPropertyBag(zerolog.Nop(), v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read property file")
}

func TestLoadPropertyBagBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "properties.yaml")
	require.NoError(t, os.WriteFile(path, []byte("region: [unclosed"), 0644))

	v := viper.New()
	v.Set("properties", path)

	_, err := config.LoadPropertyBag(zerolog.Nop(), v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal property file")
}
