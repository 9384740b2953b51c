package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/peterkuimelis/swipecity/internal/sim"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play many reigns with a scripted policy and report how they end",
	Long: `Runs independent reigns against the configured catalog and dependency
table. Useful for balancing: a catalog where the random policy survives
forever is too soft, one where every reign ends in three swipes too harsh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		engineCfg, err := cfg.EngineConfig(nil)
		if err != nil {
			return err
		}

		reigns, _ := cmd.Flags().GetInt("reigns")
		workers, _ := cmd.Flags().GetInt("workers")
		maxDecisions, _ := cmd.Flags().GetInt("max-decisions")
		policyName, _ := cmd.Flags().GetString("policy")
		quiet, _ := cmd.Flags().GetBool("quiet")

		policy, ok := sim.Policies[policyName]
		if !ok {
			return fmt.Errorf("unknown policy %q (one of %s)", policyName, strings.Join(sim.PolicyNames(), ", "))
		}

		opts := sim.Options{
			Engine:       engineCfg,
			Policy:       policy,
			Reigns:       reigns,
			MaxDecisions: maxDecisions,
			Workers:      workers,
		}
		if !quiet {
			bar := progressbar.Default(int64(reigns), "Simulating")
			opts.OnReign = func(sim.Reign) { bar.Add(1) }
			defer bar.Finish()
		}

		ctx, stop := commandContext(cmd)
		defer stop()

		stats, err := sim.Run(ctx, opts)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Printf("Policy:     %s\n", policyName)
		fmt.Print(stats)
		return nil
	},
}

func init() {
	f := simulateCmd.Flags()
	f.Int("reigns", 1000, "number of reigns to play")
	f.Int("workers", runtime.NumCPU(), "parallel workers")
	f.Int("max-decisions", 1000, "cut a reign off after this many decisions")
	f.String("policy", "random", "swipe policy: "+strings.Join(sim.PolicyNames(), ", "))
	f.BoolP("quiet", "q", false, "no progress bar")
	rootCmd.AddCommand(simulateCmd)
}
