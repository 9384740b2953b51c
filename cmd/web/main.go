package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/swipecity/internal/config"
	"github.com/peterkuimelis/swipecity/internal/web"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	artDir := flag.String("art", "", "path to card art directory")
	configFile := flag.String("config", "", "path to swipecity.yaml (default ./swipecity.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configFile, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cards, err := cfg.LoadCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ledger, err := cfg.LedgerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := web.NewServer(web.Options{
		Catalog:      cards,
		Ledger:       ledger,
		Seed:         cfg.Seed,
		ArtDir:       *artDir,
		TransitionMS: cfg.TransitionMS,
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("swipecity web UI listening on http://localhost:%d (%d cards)", *port, len(cards))
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
