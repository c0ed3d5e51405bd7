package biz

import (
	"context"

	"github.com/looplj/chirphub/internal/authz"
	"github.com/looplj/chirphub/internal/storage"
)

type AbstractService struct {
	store *storage.Client
}

// RunInTransaction runs fn in a single transaction, joining an outer
// transaction when the context already carries one.
func (a *AbstractService) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return a.store.RunInTransaction(ctx, fn)
}

func actingUser(ctx context.Context) (string, bool) {
	return authz.ActingUserID(ctx)
}
