package deps

import (
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/raastabuzz/raastabuzz-api/config"
	"github.com/raastabuzz/raastabuzz-api/internal/db"
	"github.com/raastabuzz/raastabuzz-api/util/storage"
	"github.com/raastabuzz/raastabuzz-api/util/websockets"
)

type Dependencies struct {
	DB         *db.DB
	Cloudinary *storage.Cloudinary
	Hub        *websockets.Hub
	WebSocket  *websockets.WebSocketManager
}

func New(cfg *config.Config) *Dependencies {
	database, err := db.New(cfg.Dsn)
	if err != nil {
		log.Panicln("failed to connect to database", "error", err)
	}

	cloudinary := storage.NewCloudinary(cfg)
	hub := websockets.NewHub()
	websocket := websockets.NewWebSocketManager(hub)

	deps := Dependencies{
		DB:         database,
		Cloudinary: cloudinary,
		Hub:        hub,
		WebSocket:  websocket,
	}
	return &deps
}

func (d *Dependencies) Pool() *pgxpool.Pool {
	return d.DB.Pool()
}
