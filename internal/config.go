package internal

import (
	"fmt"

	"github.com/spf13/viper"
)

// ColpackConfig is the explicit configuration handed to the export pipeline;
// there are no global lookups.
type ColpackConfig struct {
	AppName string `mapstructure:"app_name"`

	Output struct {
		Dir         string `mapstructure:"dir"`
		Compression string `mapstructure:"compression"`
	} `mapstructure:"output"`

	Writer struct {
		Backend string `mapstructure:"backend"`
		// ExternalCommand is the converter argv prefix used when the
		// backend is "external".
		ExternalCommand []string `mapstructure:"external_command"`
	} `mapstructure:"writer"`
}

// DefaultConfig returns the configuration used when no file is given:
// native backend, no compression, output under ./out.
func DefaultConfig() *ColpackConfig {
	cfg := &ColpackConfig{AppName: "colpack"}
	cfg.Output.Dir = "./out"
	cfg.Output.Compression = "none"
	cfg.Writer.Backend = "native"
	return cfg
}

// LoadConfig reads a yaml config file into a ColpackConfig.
func LoadConfig(path string) (*ColpackConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app_name", "colpack")
	v.SetDefault("output.dir", "./out")
	v.SetDefault("output.compression", "none")
	v.SetDefault("writer.backend", "native")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg ColpackConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
