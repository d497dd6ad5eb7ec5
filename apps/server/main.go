package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cobra"

	"superego/apps/server/internal/admin"
	"superego/apps/server/internal/config"
	"superego/apps/server/internal/gateway"
	"superego/apps/server/internal/registry"
	"superego/apps/server/internal/store"
	"superego/game"
)

func main() {
	cfg := &config.Config{}
	cmd := config.NewCommand(cfg, run)
	if err := cmd.Execute(); err != nil {
		log.Fatalf("[Server] %v", err)
	}
}

func run(cmd *cobra.Command, cfg *config.Config) error {
	people, decks, closeStore, err := store.New(cfg.StoreBackend, cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer closeStore()

	// gateway.New needs the registry's Lookup; registry.New needs the
	// gateway's BroadcasterFor. Neither can be fully built first, so gw is
	// captured by reference in a closure and assigned once both exist --
	// nothing calls into either until the admin surface starts a game.
	var gw *gateway.Gateway
	sessions := registry.New(func(id string) func(game.GameState) {
		return gw.BroadcasterFor(id)
	})
	gw = gateway.New(sessions.Lookup)

	adm := admin.New(people, decks, sessions)

	mux := httprouter.New()
	adm.Register(mux)
	mux.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.GET("/ws/:id", func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		gw.HandleWebSocket(p.ByName("id"))(w, r)
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           withCORS(mux),
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[Server] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[Server] listen error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[Server] shutting down")
	sessions.Stop()
	gw.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
