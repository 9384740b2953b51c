package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/peterkuimelis/swipecity/internal/game"
	"github.com/spf13/cobra"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List the cards in the catalog",
	Long: `Lists the configured catalog. With --yaml the catalog is printed in the
file format, which is a good starting point for a custom catalog. --random
draws one card, seeded by --seed when it is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cards, err := cfg.LoadCatalog()
		if err != nil {
			return err
		}
		tag, _ := cmd.Flags().GetString("tag")
		cards = game.NewCatalog(cards).ByTag(tag)

		if random, _ := cmd.Flags().GetBool("random"); random {
			seed := cfg.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			card := game.NewCatalog(cards).Random(rand.New(rand.NewSource(seed)))
			if card == nil {
				return game.ErrNoCards
			}
			cards = []*game.Card{card}
		}

		out := cmd.OutOrStdout()
		if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
			data, err := game.MarshalCatalog(cards)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}

		for _, c := range cards {
			fmt.Fprintf(out, "%-20s %s", c.ID, c.Title)
			if len(c.Tags) > 0 {
				fmt.Fprintf(out, " [%s]", strings.Join(c.Tags, ", "))
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "    ← %-28s %s\n", c.Left.Label, formatImpacts(c.Left.Impacts))
			fmt.Fprintf(out, "    → %-28s %s\n", c.Right.Label, formatImpacts(c.Right.Impacts))
		}
		return nil
	},
}

func formatImpacts(impacts []game.Impact) string {
	parts := make([]string, 0, len(impacts))
	for _, imp := range impacts {
		parts = append(parts, imp.String())
	}
	return strings.Join(parts, ", ")
}

func init() {
	cardsCmd.Flags().String("tag", "", "only cards carrying this tag")
	cardsCmd.Flags().Bool("yaml", false, "print the catalog as YAML")
	cardsCmd.Flags().Bool("random", false, "draw a single random card")
	rootCmd.AddCommand(cardsCmd)
}
