package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"GestureLink/internal/client"
	"GestureLink/internal/config"
	"GestureLink/internal/rtc"
	"GestureLink/internal/transport"
)

var callRoom string

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Join a room as a headless peer, reading landmark frames from stdin",
	Long: `call joins the given room, negotiates a peer connection with the
other member and exchanges gesture events over the data channel.
Hand landmark frames are read from stdin as newline-delimited JSON,
one detection cycle per line.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if callRoom == "" {
			callRoom = cfg.DefaultRoom
		}

		if err := rtc.Initialize(); err != nil {
			log.Fatal("Failed to initialize WebRTC:", err)
		}

		call, err := client.Dial(cfg, callRoom)
		if err != nil {
			log.Fatal("Failed to start call:", err)
		}
		defer call.Close()

		call.OnRemoteGesture = func(p transport.Payload) {
			fmt.Printf("%s (%.0f%%)\n", p.Text, p.Confidence*100)
		}

		go func() {
			if err := client.PumpFrames(os.Stdin, call.Pipeline()); err != nil {
				log.Printf("Frame source error: %v", err)
			}
		}()

		if err := call.Run(); err != nil {
			log.Printf("Call ended: %v", err)
		}
	},
}

func init() {
	callCmd.Flags().StringVarP(&callRoom, "room", "r", "", "Room id to join")
	rootCmd.AddCommand(callCmd)
}
