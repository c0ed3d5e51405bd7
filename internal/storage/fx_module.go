package storage

import (
	"go.uber.org/fx"
)

var Module = fx.Module("storage",
	fx.Provide(Open),
	fx.Provide(NewProfileStore),
	fx.Provide(NewAdminKeyStore),
	fx.Provide(NewPostStore),
	fx.Provide(NewCommentStore),
	fx.Provide(NewReactionStore),
)
