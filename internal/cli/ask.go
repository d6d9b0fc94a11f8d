package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/wikichat/internal/kb"
	"github.com/spf13/cobra"
)

var askProperty string

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and print the reply",
	Long: `Ask runs one knowledge-grounded turn and prints the reply.

With --property, the question is treated as an entity name and the
named Wikidata property is looked up directly, bypassing the language
model entirely.

Example:
  wikichat ask "How many moons does Saturn have?"
  wikichat ask Saturn --property mass`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVar(&askProperty, "property", "", "look up a Wikidata property of the named entity")
	addSessionFlags(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	ctx := context.Background()

	if askProperty != "" {
		cfg := configFromFlags()
		client := kb.NewClient(cfg, buildStore(cfg))

		fact, err := client.Fact(ctx, query, askProperty)
		if err != nil {
			return fmt.Errorf("look up %s of %s: %w", askProperty, query, err)
		}
		fmt.Printf("%s\n", fact.Value)
		return nil
	}

	// A single turn always uses knowledge augmentation
	useWikidata = true
	session, err := buildSession(configFromFlags())
	if err != nil {
		return err
	}

	reply, err := session.Turn(ctx, query)
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}
