package biz

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/looplj/chirphub/internal/storage"
)

var testDBSeq atomic.Int64

type testServices struct {
	client     *storage.Client
	profiles   *ProfileService
	posts      *PostService
	comments   *CommentService
	reactions  *ReactionService
	adminKeys  *AdminKeyService
	redemption *RedemptionService
	auth       *AuthService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	dsn := fmt.Sprintf("file:biz_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))

	client, err := storage.Open(storage.Config{Dialect: "sqlite", DSN: dsn})
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.CreateSchema(context.Background()))

	profileStore := storage.NewProfileStore(client)
	keyStore := storage.NewAdminKeyStore(client)
	postStore := storage.NewPostStore(client)
	commentStore := storage.NewCommentStore(client)
	reactionStore := storage.NewReactionStore(client)

	admins := NewAdminStatusChecker(profileStore)
	engine := NewPolicyEngine(admins, postStore)

	return &testServices{
		client:     client,
		profiles:   NewProfileService(client, profileStore, admins, engine),
		posts:      NewPostService(client, postStore, admins, engine),
		comments:   NewCommentService(client, commentStore, engine),
		reactions:  NewReactionService(client, reactionStore, engine),
		adminKeys:  NewAdminKeyService(client, keyStore, engine),
		redemption: NewRedemptionService(client, keyStore, profileStore, admins),
		auth:       NewAuthService(AuthConfig{SecretKey: "biz-test-secret"}),
	}
}
