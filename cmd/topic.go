package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/hansard"
	"github.com/hbur845/nsw-parliament-scrapper-fawwaz/internal/normalize"
)

// newTopicCmd creates and configures the 'topic' subcommand, which fetches
// a single topic and writes its branch of the tree.
func newTopicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Fetches one topic's transcript and writes its branch",
		Long: `Fetches the table of contents for the given sitting-day URL, extracts
the branch holding the requested topic, fetches and normalizes just that
topic's transcript fragment, and writes the augmented branch as a JSON
artifact. The topic is named by --docid, or by the docid of a permalink
URL.`,

		RunE: runTopicCommand,
	}

	cmd.Flags().String("url", "", "portal URL naming the sitting day (and usually the topic)")
	_ = cmd.MarkFlagRequired("url")
	cmd.Flags().String("docid", "", "topic document id (overrides the URL's docid)")
	cmd.Flags().String("engine", "", "normalization engine: xpath, goquery or dom (default from config)")

	return cmd
}

func runTopicCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	cfg := appInstance.GetConfig()
	flags := cmd.Flags()

	rawURL, err := flags.GetString("url")
	if err != nil {
		return err
	}
	pdfID, urlDocID, err := hansard.ParseIDs(rawURL)
	if err != nil {
		return err
	}

	docID, err := flags.GetString("docid")
	if err != nil {
		return err
	}
	if docID == "" {
		docID = urlDocID
	}
	if docID == "" {
		return errors.New("no docid: pass --docid or a permalink that names one")
	}

	engineName := cfg.Scrape.Engine
	if flags.Changed("engine") {
		engineName, err = flags.GetString("engine")
		if err != nil {
			return err
		}
	}
	engine, err := normalize.ParseEngine(engineName)
	if err != nil {
		return err
	}

	root, err := appInstance.GetTOC().Fetch(cmd.Context(), pdfID)
	if err != nil {
		return err
	}
	branch, ok := root.FindTopicBranch(docID)
	if !ok {
		return fmt.Errorf("no topic with docid %s on %s", docID, pdfID)
	}

	html, err := appInstance.GetFragments().FetchHTML(cmd.Context(), docID)
	if err != nil {
		return err
	}
	parsed, err := normalize.Parse(html, engine)
	if err != nil {
		return err
	}
	for _, topic := range branch.Topics() {
		if topic.DocID == docID {
			topic.Data = &hansard.TopicData{RawHTML: html, Parsed: parsed}
		}
	}

	path, err := appInstance.GetWriter().WriteTopicBranch(branch, docID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
