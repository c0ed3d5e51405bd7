package server

import (
	"github.com/gin-contrib/cors"
	"go.uber.org/fx"

	"github.com/looplj/chirphub/internal/server/api"
	"github.com/looplj/chirphub/internal/server/biz"
	"github.com/looplj/chirphub/internal/server/middleware"
)

type Handlers struct {
	fx.In

	System   *api.SystemHandlers
	Auth     *api.AuthHandlers
	Profile  *api.ProfileHandlers
	AdminKey *api.AdminKeyHandlers
	Post     *api.PostHandlers
	Comment  *api.CommentHandlers
	Reaction *api.ReactionHandlers
}

type Services struct {
	fx.In

	AuthService *biz.AuthService
}

func SetupRoutes(server *Server, handlers Handlers, services Services) {
	server.Use(middleware.AccessLog())
	server.Use(middleware.WithLoggingTracing(server.Config.Trace))

	if server.Config.CORS.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = server.Config.CORS.AllowedOrigins
		corsConfig.AllowMethods = server.Config.CORS.AllowedMethods
		corsConfig.AllowHeaders = server.Config.CORS.AllowedHeaders
		corsConfig.ExposeHeaders = server.Config.CORS.ExposedHeaders
		corsConfig.AllowCredentials = server.Config.CORS.AllowCredentials
		corsConfig.MaxAge = server.Config.CORS.MaxAge

		corsHandler := cors.New(corsConfig)
		server.Use(corsHandler)
		server.OPTIONS("*any", corsHandler)
	}

	server.GET("/health", handlers.System.Health)

	// Every route resolves identity; anonymous requests pass through and see
	// only public rows.
	v1 := server.Group("/v1",
		middleware.WithTimeout(server.Config.RequestTimeout),
		middleware.WithIdentity(services.AuthService),
	)
	{
		v1.POST("/auth/token", handlers.Auth.Token)
		v1.GET("/profiles/:userID", handlers.Profile.GetProfile)
		v1.GET("/posts/:postID", handlers.Post.GetPost)
		v1.GET("/posts/:postID/comments", handlers.Comment.ListComments)
		v1.GET("/comments/:commentID", handlers.Comment.GetComment)
		v1.GET("/posts/:postID/reactions/:kind/:reactionID", handlers.Reaction.GetReaction)
	}

	authed := v1.Group("", middleware.RequireIdentity(services.AuthService))
	{
		authed.GET("/me", handlers.Auth.Me)
		authed.GET("/me/admin", handlers.Auth.MeAdmin)
		authed.PUT("/profiles/me", handlers.Profile.UpsertProfile)
		authed.POST("/admin-keys/redeem", handlers.AdminKey.Redeem)
		authed.POST("/admin-keys", handlers.AdminKey.SeedKeys)

		authed.POST("/posts", handlers.Post.CreatePost)
		authed.PUT("/posts/:postID", handlers.Post.UpdatePost)
		authed.PUT("/posts/:postID/status", handlers.Post.ModeratePost)
		authed.DELETE("/posts/:postID", handlers.Post.DeletePost)

		authed.POST("/posts/:postID/comments", handlers.Comment.CreateComment)
		authed.PUT("/comments/:commentID", handlers.Comment.UpdateComment)

		authed.POST("/posts/:postID/reactions/:kind", handlers.Reaction.CreateReaction)
		authed.DELETE("/posts/:postID/reactions/:kind/:reactionID", handlers.Reaction.DeleteReaction)
	}
}
