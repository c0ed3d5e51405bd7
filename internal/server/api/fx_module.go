package api

import (
	"go.uber.org/fx"
)

var Module = fx.Module("api",
	fx.Provide(NewSystemHandlers),
	fx.Provide(NewAuthHandlers),
	fx.Provide(NewProfileHandlers),
	fx.Provide(NewAdminKeyHandlers),
	fx.Provide(NewPostHandlers),
	fx.Provide(NewCommentHandlers),
	fx.Provide(NewReactionHandlers),
)
