package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/illmade-knight/datashare-deploy/config"
	"github.com/illmade-knight/datashare-deploy/generator"
	"github.com/illmade-knight/datashare-deploy/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Setup logging
	logger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	// 2. Define command-line flags using pflag
	pflag.String("properties", "properties.yaml", "Path to the deployment property file")
	pflag.String("format", "yaml", "Output format: 'yaml' or 'json'")
	pflag.String("output", "", "Write the generated document to this file instead of stdout")
	pflag.String("container-tag", "", "Container tag (overrides the property file)")
	pflag.String("region", "", "Deployment region (overrides the property file)")
	pflag.String("release-tag", "", "Datashare release tag to check out (overrides the property file)")
	pflag.Parse()

	// 3. Bind pflags to Viper
	v := viper.New()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		log.Fatal().Err(err).Msg("Failed to bind command-line flags")
	}

	// 4. Load and validate the property bag
	bag, err := config.LoadPropertyBag(logger, v)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load property file")
	}
	if err := schema.Validate(bag); err != nil {
		log.Fatal().Err(err).Msg("Property bag failed schema validation")
	}
	props, err := generator.ParseProperties(bag)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse properties")
	}

	// 5. Generate the resource document
	doc, err := generator.Generate(props)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate deployment configuration")
	}

	var out []byte
	switch format := v.GetString("format"); format {
	case "yaml":
		out, err = yaml.Marshal(doc)
	case "json":
		out, err = json.MarshalIndent(doc, "", "  ")
	default:
		log.Fatal().Str("format", format).Msg("Invalid format. Please use 'yaml' or 'json'.")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode deployment configuration")
	}

	// 6. Emit to the chosen destination
	if path := v.GetString("output"); path != "" {
		if err := os.WriteFile(path, out, 0644); err != nil {
			log.Fatal().Err(err).Str("output", path).Msg("Failed to write deployment configuration")
		}
		log.Info().Str("output", path).Msg("Deployment configuration written.")
	} else {
		if _, err := os.Stdout.Write(out); err != nil {
			log.Fatal().Err(err).Msg("Failed to write deployment configuration to stdout")
		}
	}
}
