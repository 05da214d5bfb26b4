package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"blogify/internal/api"
	"blogify/internal/auth"
	"blogify/internal/comment"
	"blogify/internal/config"
	"blogify/internal/db"
	"blogify/internal/post"
	redisdb "blogify/internal/redis"
	"blogify/internal/user"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	conn, err := db.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	keys, err := auth.LoadKeys(cfg.Auth.PrivateKeyPath, cfg.Auth.PublicKeyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Key load error: %v\n", err)
		os.Exit(1)
	}

	var presence *auth.Presence
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if rdb, err := redisdb.Connect(ctx, cfg); err != nil {
			log.Printf("[Main] WARNING: redis unreachable at %s, online tracking disabled: %v", cfg.Redis.Addr, err)
		} else {
			presence = auth.NewPresence(rdb, time.Duration(cfg.Auth.PresenceMins)*time.Minute)
			log.Printf("[Main] online tracking enabled (window: %d minutes)", cfg.Auth.PresenceMins)
		}
		cancel()
	} else {
		log.Printf("[Main] redis not configured, online tracking disabled")
	}

	rule, err := post.ParseDeleteRule(cfg.Posts.DeleteRule)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if rule == post.DeleteAdminAndOwner {
		log.Printf("[Main] WARNING: posts.delete_rule=%s, only admins may delete their own posts", rule)
	}

	tokens := auth.NewTokenService(keys, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	userStore := user.NewStore(conn)
	postStore := post.NewStore(conn)

	r := api.SetupRouter(cfg, api.Deps{
		Auth:     auth.NewService(userStore, tokens),
		Guard:    auth.NewGuard(tokens, userStore, presence),
		Presence: presence,
		Users:    user.NewService(userStore),
		Posts:    post.NewService(postStore, userStore, rule),
		Comments: comment.NewService(comment.NewStore(conn), postStore),
	})
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s%s\n", addr, cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
