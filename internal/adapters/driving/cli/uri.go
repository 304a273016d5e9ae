package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	uriCursor string
	uriNext   bool
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "List the feeds gdata can query",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s := newStyles(cmd.OutOrStdout())
		for _, f := range feeds {
			name := f.Name
			if f.Arg != "" {
				if f.ArgRequired {
					name += " <" + f.Arg + ">"
				} else {
					name += " [" + f.Arg + "]"
				}
			}
			cmd.Printf("%-36s %s\n", s.Key.Render(name), f.Description)
			cmd.Printf("%-36s %s\n", "", s.Muted.Render(f.URI("")))
		}
		return nil
	},
}

var uriCmd = &cobra.Command{
	Use:   "uri <feed> [arg]",
	Short: "Print the request URI for a query",
	Long: `Builds the URI a query would request without sending it.

Examples:
  gdata uri contacts/contacts --param q=smith --param max_results=25
  gdata uri calendar/events work@example.com --param order_by=starttime
  gdata uri tasks/lists --cursor <cursor>`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runURI,
}

func init() {
	addParamFlag(uriCmd)
	uriCmd.Flags().StringVar(&uriCursor, "cursor", "", "continue from a cursor printed by fetch")
	uriCmd.Flags().BoolVar(&uriNext, "next", false, "move to the next page before building")
	rootCmd.AddCommand(feedsCmd)
	rootCmd.AddCommand(uriCmd)
}

func runURI(cmd *cobra.Command, args []string) error {
	f, arg, err := feedArgs(args)
	if err != nil {
		return err
	}
	values, err := parseParams(params)
	if err != nil {
		return err
	}

	q, err := f.buildQuery(values, arg, uriCursor)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}
	if uriNext {
		q.Base().NextPage()
	}

	uri, err := q.QueryURI(f.URI(arg))
	if err != nil {
		return fmt.Errorf("failed to build URI: %w", err)
	}
	cmd.Println(uri)
	return nil
}

// feedArgs resolves the feed name and optional argument of a command.
func feedArgs(args []string) (*feed, string, error) {
	f, err := lookupFeed(args[0])
	if err != nil {
		return nil, "", err
	}
	var arg string
	if len(args) > 1 {
		arg = args[1]
	}
	if err := f.checkArg(arg); err != nil {
		return nil, "", err
	}
	return f, arg, nil
}
