package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/swipecity/internal/config"
	swipemcp "github.com/peterkuimelis/swipecity/internal/mcp"
)

func main() {
	configFile := flag.String("config", "", "path to swipecity.yaml (default ./swipecity.yaml if present)")
	catalogFile := flag.String("catalog", "", "card catalog YAML (default: built-in cards)")
	flag.Parse()

	if err := run(*configFile, *catalogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile, catalogFile string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}
	if catalogFile != "" {
		cfg.Catalog = catalogFile
	}

	cards, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}
	ledger, err := cfg.LedgerConfig()
	if err != nil {
		return err
	}
	swipemcp.SetCatalog(cards)
	swipemcp.SetLedgerConfig(ledger)

	s := server.NewMCPServer("swipecity", "1.0.0")
	swipemcp.RegisterTools(s)
	return server.ServeStdio(s)
}
