// Command server runs the Gomoku arena: the HTTP API, the player-facing
// websocket endpoint, and the operator webhook bus, all backed by one
// Runtime event loop. Startup and graceful shutdown follow
// backend/cmd/bot-hoster/main.go's signal-handling shape: construct
// dependencies, launch background goroutines, block on an OS signal, then
// tear down.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/korjavin/gomoku-arena/internal/ai"
	"github.com/korjavin/gomoku-arena/internal/applog"
	"github.com/korjavin/gomoku-arena/internal/config"
	"github.com/korjavin/gomoku-arena/internal/httpapi"
	"github.com/korjavin/gomoku-arena/internal/operatorbus"
	"github.com/korjavin/gomoku-arena/internal/registry"
	"github.com/korjavin/gomoku-arena/internal/runtime"
	"github.com/korjavin/gomoku-arena/internal/wsconn"
)

func main() {
	cfg := config.Load()
	log := applog.New(applog.ParseLevel(cfg.LogLevel))

	reg := registry.New()
	engine := ai.NewEngine()
	operators := operatorbus.New(log)

	rt := runtime.New(reg, engine, runtime.NopBroadcaster{}, log)
	hub := wsconn.New(reg, rt, log)
	rebindBroadcaster(rt, hub)

	ctx, cancelRuntime := context.WithCancel(context.Background())
	go rt.Run(ctx)

	checkOrigin := originChecker(cfg.AllowedOrigins)

	api := httpapi.New(rt, reg)
	mux := api.Routes()
	mux.HandleFunc("GET /ws/gomoku/{roomId}", hub.ServeHTTP(checkOrigin))

	gameServer := &http.Server{Addr: ":" + cfg.Port, Handler: mux}

	webhookMux := http.NewServeMux()
	webhookMux.HandleFunc("POST /webhooks/square", operators.WebhookHandler(cfg.SquareWebhookSignatureKey, webhookNotifyURL(cfg)))
	webhookMux.HandleFunc("GET /admin", operators.ServeHTTP(checkOrigin))
	webhookServer := &http.Server{Addr: ":" + cfg.WebhookPort, Handler: webhookMux}

	go func() {
		log.Infof("game server listening on :%s", cfg.Port)
		if err := gameServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("game server: %v", err)
		}
	}()
	go func() {
		log.Infof("webhook server listening on :%s", cfg.WebhookPort)
		if err := webhookServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("webhook server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Infof("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	gameServer.Shutdown(shutdownCtx)
	webhookServer.Shutdown(shutdownCtx)
	cancelRuntime()
}

// rebindBroadcaster replaces the Runtime's no-op broadcaster with the
// real socket hub. The two-step construction exists because Hub needs a
// *runtime.Runtime to dispatch client moves, while Runtime needs a
// Broadcaster to publish events — an unavoidable cycle broken here rather
// than by merging the two types together.
func rebindBroadcaster(rt *runtime.Runtime, hub *wsconn.Hub) {
	runtime.SetBroadcaster(rt, hub)
}

// originChecker matches an incoming Origin header against the configured
// allow-list, per spec.md §6. An entry may be an exact origin, the literal
// "*", or carry a "*"-prefixed wildcard subdomain such as
// "https://*.example.com", matched against the origin's suffix after the
// star.
func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
			if idx := strings.Index(a, "*"); idx >= 0 && strings.HasSuffix(origin, a[idx+1:]) {
				return true
			}
		}
		return false
	}
}

func webhookNotifyURL(cfg config.Config) string {
	scheme := "https"
	if !cfg.IsProduction() {
		scheme = "http"
	}
	return scheme + "://localhost:" + cfg.WebhookPort + "/webhooks/square"
}
