package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/cardgame-go/internal/services/cards"
)

func newDecksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List and validate the configured card sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			service := cards.New(buildLogger())
			if err := service.LoadDir(flags.CardDir); err != nil {
				return err
			}

			for _, set := range service.Sets() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d prompts, %d responses\n",
					set.Name, len(set.Prompts), len(set.Responses))
			}

			prompts, responses, err := service.Cards()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "merged pool: %d prompts, %d responses\n",
				len(prompts), len(responses))
			return nil
		},
	}
}
