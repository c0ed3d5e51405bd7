// Package conf loads the process configuration from file and environment.
package conf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/looplj/chirphub/internal/log"
	"github.com/looplj/chirphub/internal/server"
	"github.com/looplj/chirphub/internal/server/biz"
	"github.com/looplj/chirphub/internal/storage"
)

type Config struct {
	Server  server.Config  `conf:"server" yaml:"server" json:"server"`
	Storage storage.Config `conf:"storage" yaml:"storage" json:"storage"`
	Log     log.Config     `conf:"log" yaml:"log" json:"log"`
	Auth    biz.AuthConfig `conf:"auth" yaml:"auth" json:"auth"`

	// AdminKeys are seeded at startup. Codes already present are left alone.
	AdminKeys []string `conf:"admin_keys" yaml:"admin_keys" json:"admin_keys"`
}

// Defaults double as key registrations: viper only honors environment
// overrides for keys it knows about.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "chirphub")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.debug", false)

	v.SetDefault("storage.dialect", "sqlite")
	v.SetDefault("storage.dsn", "file:chirphub.db?cache=shared")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("auth.secret_key", "")
	v.SetDefault("auth.token_ttl", "168h")

	v.SetDefault("admin_keys", []string{})
}

// Load reads chirphub.yml (working directory or /etc/chirphub) and the
// CHIRPHUB_* environment, in that order of precedence.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("chirphub")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/chirphub")

	v.SetEnvPrefix("CHIRPHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var config Config

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err = v.Unmarshal(&config, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "conf"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err != nil {
		return config, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}
