package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sandevgo/chatpruner/internal/core"
	"github.com/sandevgo/chatpruner/pkg/conv"
	"github.com/sandevgo/chatpruner/pkg/log"
	"github.com/spf13/cobra"
)

var importMarkdown bool

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Load a JSON export of chat messages into the store",
	Long: `Reads a JSON array of messages and appends them to the store in file order.
Use "-" to read from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(ctx context.Context, a *app) error {
			records, err := readExport(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			now := time.Now().UnixMilli()
			for i, rec := range records {
				records[i] = prepareImport(rec, importMarkdown, now)
			}

			added, err := a.messages.AddMessages(ctx, records)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", args[0], err)
			}
			skipped := len(records) - added

			log.FromCtx(ctx).Info().Int("added", added).Int("skipped", skipped).Str("file", args[0]).Msg("messages imported")
			text := fmt.Sprintf("Imported %d message(s).", added)
			if skipped > 0 {
				text += fmt.Sprintf(" Skipped %d already in the store.", skipped)
			}
			a.notifier.Notify(core.NoticeInfo, text)
			return nil
		})
	},
}

func readExport(stdin io.Reader, path string) ([]core.MessageRecord, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var records []core.MessageRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return records, nil
}

// prepareImport renders or sanitises the markup and fills a missing time.
func prepareImport(rec core.MessageRecord, markdown bool, now int64) core.MessageRecord {
	if markdown {
		rec.Content = conv.MarkdownToHTML([]byte(rec.Content))
	} else {
		rec.Content = conv.SanitizeHTML(rec.Content)
	}
	rec.Flavor = conv.SanitizeHTML(rec.Flavor)
	if rec.Timestamp <= 0 {
		rec.Timestamp = now
	}
	return rec
}

func init() {
	importCmd.Flags().BoolVar(&importMarkdown, "markdown", false, "treat message content as Markdown")
	rootCmd.AddCommand(importCmd)
}
