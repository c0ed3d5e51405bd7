package conf

import (
	"go.uber.org/fx"

	"github.com/looplj/chirphub/internal/log"
	"github.com/looplj/chirphub/internal/server"
	"github.com/looplj/chirphub/internal/server/biz"
	"github.com/looplj/chirphub/internal/storage"
)

// Module provides the loaded config and its sections, so downstream packages
// depend on their own section type instead of this package.
var Module = fx.Module("conf",
	fx.Provide(Load),
	fx.Provide(func(c Config) server.Config { return c.Server }),
	fx.Provide(func(c Config) storage.Config { return c.Storage }),
	fx.Provide(func(c Config) log.Config { return c.Log }),
	fx.Provide(func(c Config) biz.AuthConfig { return c.Auth }),
	fx.Provide(func(c Config) server.SeedKeys { return server.SeedKeys(c.AdminKeys) }),
)
