// Command enginesrv runs the rules-engine server: it loads content tables,
// opens the file-backed save store, and serves battle sessions over
// websockets. Grounded on the teacher's cmd/server/main.go wiring order
// (config -> logger -> stores -> listener), with the teacher's
// auth/chat/draft/room/tournament subsystems replaced by this engine's
// narrower battle-session surface (§6.1).
package main

import (
	"flag"
	"log"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dreamtides/battlecore/internal/api"
	"github.com/dreamtides/battlecore/internal/config"
	"github.com/dreamtides/battlecore/internal/engine/content"
	"github.com/dreamtides/battlecore/internal/engine/identifiers"
	"github.com/dreamtides/battlecore/internal/enginelog"
	"github.com/dreamtides/battlecore/internal/persist"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the server config file")
	cardsPath := flag.String("cards", "content/cards.toml", "path to the card definition table")
	dreamwellPath := flag.String("dreamwell", "content/dreamwell.toml", "path to the dreamwell table")
	cardListsPath := flag.String("card-lists", "content/card_lists.toml", "path to the named card list table")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("enginesrv: loading config: %v", err)
	}

	logger, err := enginelog.New(cfg.Logging)
	if err != nil {
		log.Fatalf("enginesrv: building logger: %v", err)
	}
	defer logger.Sync()

	tabula, err := content.LoadTabula(*cardsPath, *dreamwellPath, *cardListsPath)
	if err != nil {
		logger.Fatal("loading content tables", zap.Error(err))
	}

	store, err := persist.NewFileStore(cfg.Persist.Directory)
	if err != nil {
		logger.Fatal("opening save store", zap.Error(err))
	}

	replayDir := filepath.Join(cfg.Persist.Directory, "replays")
	hub := api.NewHub(tabula, identifiers.Points(cfg.Battle.VictoryPointThreshold), store, replayDir, logger)
	go hub.Run()

	mux := http.NewServeMux()
	mux.Handle("/ws", api.Handler(hub))

	logger.Info("enginesrv listening", zap.String("address", cfg.Server.WebSocketAddress))
	if err := http.ListenAndServe(cfg.Server.WebSocketAddress, mux); err != nil {
		logger.Fatal("serving", zap.Error(err))
	}
}
