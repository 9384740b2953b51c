package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"time"

	"github.com/peterkuimelis/swipecity/internal/log"
	swipenet "github.com/peterkuimelis/swipecity/internal/net"
	"github.com/peterkuimelis/swipecity/internal/tui"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a reign in the terminal",
	Long: `Starts a local game. By default the game runs in a full-screen terminal UI
(arrow keys or h/l to swipe). With --plain it runs as a line-based REPL over
the same protocol the network server speaks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		plain, _ := cmd.Flags().GetBool("plain")
		logFile, _ := cmd.Flags().GetString("log")

		var logger log.EventLogger
		if logFile != "" {
			f, err := os.Create(logFile)
			if err != nil {
				return fmt.Errorf("open event log: %w", err)
			}
			defer f.Close()
			logger = log.NewTextLogger(f)
		}

		engineCfg, err := cfg.EngineConfig(logger)
		if err != nil {
			return err
		}

		if !plain {
			return tui.Run(engineCfg, time.Duration(cfg.TransitionMS)*time.Millisecond)
		}

		ctx, stop := commandContext(cmd)
		defer stop()

		// The local REPL talks to an in-process session through a pipe.
		clientConn, serverConn := net.Pipe()
		defer clientConn.Close()
		go func() {
			defer serverConn.Close()
			_ = swipenet.ServeConn(ctx, serverConn, swipenet.SessionConfig{
				Catalog: engineCfg.Catalog,
				Ledger:  engineCfg.Ledger,
				Seed:    engineCfg.Seed,
				Logger: func() log.EventLogger {
					if logger != nil {
						return logger
					}
					return log.NewTextLogger(io.Discard)
				},
			})
		}()
		return swipenet.NewClient(clientConn, os.Stdin, os.Stdout).RunREPL(ctx)
	},
}

func init() {
	playCmd.Flags().Bool("plain", false, "line-based REPL instead of the full-screen UI")
	playCmd.Flags().String("log", "", "write the event log to this file")
	rootCmd.AddCommand(playCmd)
}

// commandContext returns a context cancelled on interrupt.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}
