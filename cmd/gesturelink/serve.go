package main

import (
	"log"

	"github.com/spf13/cobra"

	"GestureLink/internal/config"
	"GestureLink/internal/server"
	"GestureLink/internal/sessionlog"
	"GestureLink/internal/signaling"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the signaling server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		sessions, err := sessionlog.Open(cfg.SessionDB)
		if err != nil {
			log.Fatal("Failed to open session log:", err)
		}
		defer sessions.Close()

		registry := signaling.NewRegistry()
		handler := signaling.NewHandler(registry, sessions)

		srv := server.New(cfg, handler, sessions)
		log.Fatal(srv.Start())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
