package main

import (
	"github.com/peterkuimelis/swipecity/internal/config"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "swipecity",
	Short: "A swipe-left/swipe-right city management card game",
	Long: `Swipe City puts you in the mayor's office. Every card is a decision with
two sides; each side nudges Economy, Technology, Environment and Happiness.
Some resources drag others along with them. Let any of them hit its floor
or ceiling and your reign is over.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ./swipecity.yaml if present)")
	pf.String("catalog", "", "card catalog YAML (default: built-in cards)")
	pf.Int64("seed", 0, "RNG seed for the deck order (0 for random)")
	pf.Int("cascade-depth", 1, "how many hops a resource change may cascade")
	pf.Int("transition-ms", config.DefaultTransitionMS, "card transition length in milliseconds")
}

// loadConfig resolves the config file, SWIPECITY_* environment and flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(cfgFile, cmd.Flags())
}
