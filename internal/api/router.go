package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/anshkapoor/gramly/internal/api/handlers"
	"github.com/anshkapoor/gramly/internal/api/middleware"
	"github.com/anshkapoor/gramly/internal/auth"
	"github.com/anshkapoor/gramly/internal/cache"
	"github.com/anshkapoor/gramly/internal/comment"
	"github.com/anshkapoor/gramly/internal/config"
	"github.com/anshkapoor/gramly/internal/llm"
	"github.com/anshkapoor/gramly/internal/message"
	"github.com/anshkapoor/gramly/internal/moderation"
	"github.com/anshkapoor/gramly/internal/post"
	"github.com/anshkapoor/gramly/internal/profile"
	"github.com/anshkapoor/gramly/internal/queue"
	"github.com/anshkapoor/gramly/internal/reel"
	"github.com/anshkapoor/gramly/internal/storage"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
	jwt   *auth.JWTMiddleware
	mod   *moderation.Service
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	var verdictCache *cache.Cache
	if rdb != nil {
		verdictCache = cache.NewCache(rdb)
	}

	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		jwt:   auth.NewJWTMiddleware(cfg.Auth.JWTSecret),
		mod:   moderation.NewService(cfg.Moderation, llm.NewGateway(cfg.Moderation), verdictCache),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(50, 100)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Moderation function endpoint. Public like the original edge function:
	// browsers call it directly before inserting a comment row.
	moderationH := handlers.NewModerationHandler(rt.mod)
	r.Post("/functions/v1/moderate-comment", moderationH.Moderate)

	// Services
	store := storage.NewSupabaseStorage(rt.cfg.Storage.SupabaseURL, rt.cfg.Storage.SupabaseKey)
	queueClient := queue.NewClient(rt.cfg.Redis)

	profileSvc := profile.NewService(rt.db, store, rt.cfg.Storage.Bucket)
	postSvc := post.NewService(rt.db)
	commentSvc := comment.NewService(rt.db, rt.mod, queueClient)
	reelSvc := reel.NewService(rt.db)
	messageSvc := message.NewService(rt.db, rt.mod, queueClient)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.jwt.Authenticate)

		profileH := handlers.NewProfileHandler(profileSvc)
		r.Route("/profiles", func(r chi.Router) {
			r.Get("/me", profileH.Me)
			r.Put("/me", profileH.Update)
			r.Post("/me/avatar", profileH.UploadAvatar)
			r.Get("/{username}", profileH.Get)
		})

		postH := handlers.NewPostHandler(postSvc)
		commentH := handlers.NewCommentHandler(commentSvc)
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postH.Feed)
			r.Post("/", postH.Create)
			r.Post("/{id}/like", postH.Like)
			r.Delete("/{id}/like", postH.Unlike)
			r.Post("/{id}/favorite", postH.Favorite)
			r.Delete("/{id}/favorite", postH.Unfavorite)
			r.Get("/{id}/comments", commentH.ListForPost)
			r.Post("/{id}/comments", commentH.CreateForPost)
		})
		r.Get("/favorites", postH.Favorites)

		reelH := handlers.NewReelHandler(reelSvc)
		r.Route("/reels", func(r chi.Router) {
			r.Get("/", reelH.List)
			r.Post("/", reelH.Create)
			r.Post("/{id}/like", reelH.Like)
			r.Delete("/{id}/like", reelH.Unlike)
			r.Get("/{id}/comments", commentH.ListForReel)
			r.Post("/{id}/comments", commentH.CreateForReel)
		})

		messageH := handlers.NewMessageHandler(messageSvc)
		r.Route("/messages", func(r chi.Router) {
			r.Get("/{peerID}", messageH.Conversation)
			r.Post("/{peerID}", messageH.Send)
		})
	})

	return r
}
