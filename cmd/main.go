package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raastabuzz/raastabuzz-api/config"
	"github.com/raastabuzz/raastabuzz-api/internal/db"
	deps "github.com/raastabuzz/raastabuzz-api/internal/debs"
	api "github.com/raastabuzz/raastabuzz-api/internal/http/rest"
	"github.com/raastabuzz/raastabuzz-api/internal/vote"
	smtp "github.com/raastabuzz/raastabuzz-api/util/email"
)

const (
	allowConnectionsAfterShutdown = 1 * time.Second
)

func main() {
	cfg := config.New()

	if cfg.MigrateOnStart {
		if err := db.MigrateUp(cfg.Dsn); err != nil {
			log.Panicln("failed to run migrations", "error", err)
		}
	}

	deps := deps.New(cfg)

	mailer := smtp.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)

	a := &api.API{
		Config: cfg,
		Deps:   deps,
		Mailer: mailer,
		DB:     deps.DB.Pool(),
		Votes:  vote.NewCoordinator(deps.DB, deps.Hub, cfg.VerificationThreshold),
	}
	go deps.WebSocket.Run()
	go func() {
		log.Printf("Server running on port %v ...", cfg.Port)
		log.Fatal(a.Serve())
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-stopChan

	log.Println("Request to shutdown server. Doing nothing for ", allowConnectionsAfterShutdown)
	waitTimer := time.NewTimer(allowConnectionsAfterShutdown)
	<-waitTimer.C

	log.Println("Shutting down server...")

	if err := a.Shutdown(); err != nil {
		log.Println("error shutting down server", err)
	}

	deps.DB.Close()
	log.Println("Database connections closed.")
}
