// Command pokedexd runs the Pokedex appliance daemon: it owns the record
// store, listens for GPIO button presses, renders the display, and serves
// the IPC socket used by the pokedex CLI.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pokedexd/internal/config"
	"pokedexd/internal/daemon"
	"pokedexd/internal/display"
	"pokedexd/internal/ipc"
	"pokedexd/internal/logging"
	"pokedexd/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.NewForDir(cfg.Paths.LogDir, cfg.Logging.Level, cfg.Logging.Format, "pokedexd.log")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		logger.Error("open store", logging.Error(err))
		os.Exit(1)
	}
	defer st.Close()

	renderer := display.NewTerminal(os.Stdout, cfg.Display.Width, cfg.Display.Color)
	d, err := daemon.New(cfg, st, renderer, logger)
	if err != nil {
		logger.Error("create daemon", logging.Error(err))
		os.Exit(1)
	}
	defer d.Close()

	ipcServer, err := ipc.NewServer(ctx, cfg.SocketPath(), d, logger)
	if err != nil {
		logger.Error("start IPC server", logging.Error(err))
		os.Exit(1)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", logging.Error(err))
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("pokedexd shutting down")
}
