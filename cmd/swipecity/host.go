package main

import (
	"fmt"

	swipenet "github.com/peterkuimelis/swipecity/internal/net"
	"github.com/spf13/cobra"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Serve games over TCP",
	Long:  `Listens for players. Every connection gets its own deck and resources; play with "swipecity join".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engineCfg, err := cfg.EngineConfig(nil)
		if err != nil {
			return err
		}
		addr, _ := cmd.Flags().GetString("addr")

		ctx, stop := commandContext(cmd)
		defer stop()

		srv := &swipenet.Server{
			Addr: addr,
			Session: swipenet.SessionConfig{
				Catalog: engineCfg.Catalog,
				Ledger:  engineCfg.Ledger,
				Seed:    engineCfg.Seed,
			},
		}
		fmt.Printf("Hosting %d cards\n", len(engineCfg.Catalog))
		return srv.Run(ctx)
	},
}

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Play on a server started with \"swipecity host\"",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		ctx, stop := commandContext(cmd)
		defer stop()
		return swipenet.Connect(ctx, addr)
	},
}

func init() {
	hostCmd.Flags().String("addr", ":9000", "TCP address to listen on")
	joinCmd.Flags().String("addr", "localhost:9000", "server address to connect to")
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(joinCmd)
}
