package main

import (
	"flag"
	"fmt"
	"os"

	"chitchat-client/api"
	"chitchat-client/channel"
	"chitchat-client/config"
	"chitchat-client/session"
	"chitchat-client/ui"
)

func main() {
	apiURL := flag.String("api", "", "REST API base URL (overrides CHITCHAT_API_URL)")
	channelURL := flag.String("channel", "", "realtime channel URL (overrides CHITCHAT_CHANNEL_URL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *channelURL != "" {
		cfg.ChannelURL = *channelURL
	}

	store := session.NewStore(cfg.DataDir)
	backend := api.NewClient(cfg.APIBaseURL)
	ch := channel.NewClient(cfg.ChannelURL)
	uploader := api.NewUploader(cfg.CloudinaryCloud, cfg.UploadPreset)

	app := ui.NewApp(store, backend, ch, uploader)
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
