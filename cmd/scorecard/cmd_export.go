package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/spboyer/scorecard/internal/deck"
	"github.com/spboyer/scorecard/internal/projectconfig"
	"github.com/spboyer/scorecard/internal/session"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		sessionPath string
		req         deck.Request
		outDir      string
		toBlob      bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved moments as a deck bundle",
		Long: `Export saved scorecard moments as a gzip-compressed JSON deck bundle for the
slide renderer.

The bundle is written to --out and, with --blob, also uploaded to the Azure
Blob Storage container configured as deck.blob_container_url (or
SCORECARD_BLOB_URL). Uploads authenticate with DefaultAzureCredential.
Without --moment every saved moment is included.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := session.NewStore(a.sessionPath(sessionPath))
			st, err := store.Load()
			if err != nil {
				return err
			}

			builder := &deck.Builder{Styles: a.cfg.Deck.Styles, DefaultStyle: a.cfg.Deck.DefaultStyle}
			b, err := builder.Build(req, st)
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = a.cfg.Deck.OutputDir
			}
			pubs := []deck.Publisher{&deck.FilePublisher{Dir: outDir}}
			if toBlob {
				if a.cfg.Deck.BlobContainerURL == "" {
					return errors.New("--blob needs deck.blob_container_url in " + projectconfig.FileName + " or " + projectconfig.EnvBlobURL)
				}
				bp, err := deck.NewBlobPublisher(a.cfg.Deck.BlobContainerURL)
				if err != nil {
					return err
				}
				pubs = append(pubs, bp)
			}

			dests, err := deck.PublishAll(cmd.Context(), b, pubs...)
			if err != nil {
				return err
			}

			event := session.NewEvent(session.EventDeckExported, session.DeckExportedData(b.ID, len(b.Moments), dests))
			if err := appendJournal(store.JournalPath(), event); err != nil {
				slog.Debug("session journal unavailable", "error", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Deck bundle %s (%d moment(s), style %s)\n", b.ID, len(b.Moments), b.Style) //nolint:errcheck
			for _, d := range dests {
				fmt.Fprintf(out, "  %s\n", d) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session", "", "Session file (default from .scorecard.yaml)")
	cmd.Flags().StringVar(&req.Title, "title", deck.DefaultTitle, "Deck title")
	cmd.Flags().StringVar(&req.Subtitle, "subtitle", deck.DefaultSubtitle, "Deck subtitle")
	cmd.Flags().StringArrayVar(&req.Moments, "moment", nil, "Saved moment to include (repeatable)")
	cmd.Flags().StringVar(&req.Style, "style", "", "Deck style preset (default from .scorecard.yaml)")
	cmd.Flags().StringVar(&req.ImageRegion, "region", deck.DefaultImageRegion, "Region for generated imagery")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default from .scorecard.yaml)")
	cmd.Flags().BoolVar(&toBlob, "blob", false, "Also upload the bundle to Azure Blob Storage")

	return cmd
}

func appendJournal(path string, event session.Event) error {
	journal, err := session.NewJSONLogger(path)
	if err != nil {
		return err
	}
	defer journal.Close() //nolint:errcheck
	return journal.Log(event)
}
