package biz

import (
	"go.uber.org/fx"
)

var Module = fx.Module("biz",
	fx.Provide(NewAuthService),
	fx.Provide(NewAdminStatusChecker),
	fx.Provide(NewPolicyEngine),
	fx.Provide(NewProfileService),
	fx.Provide(NewPostService),
	fx.Provide(NewCommentService),
	fx.Provide(NewReactionService),
	fx.Provide(NewAdminKeyService),
	fx.Provide(NewRedemptionService),
)
