package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
)

// newTocCmd creates and configures the 'toc' subcommand, which prints a
// sitting day's table of contents without fetching any fragments.
func newTocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toc",
		Short: "Prints a sitting day's table of contents",
		Long: `Fetches the table of contents for the given sitting-day URL and prints
the proceedings index as JSON: each top-level proceeding with the document
id of its first topic. With --topics every fetchable topic is listed
instead.`,

		RunE: runTocCommand,
	}

	cmd.Flags().String("url", "", "portal URL of the sitting day")
	_ = cmd.MarkFlagRequired("url")
	cmd.Flags().Bool("topics", false, "list every topic instead of the proceedings index")

	return cmd
}

func runTocCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}

	rawURL, err := cmd.Flags().GetString("url")
	if err != nil {
		return err
	}
	pdfID, err := hansard.ExtractPdfID(rawURL)
	if err != nil {
		return err
	}

	root, err := appInstance.GetTOC().Fetch(cmd.Context(), pdfID)
	if err != nil {
		return err
	}

	listTopics, err := cmd.Flags().GetBool("topics")
	if err != nil {
		return err
	}
	if listTopics {
		for proc, topic := range root.Topics() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", proc.Name, topic.Name, topic.DocID)
		}
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(root.IndexPairs())
}
