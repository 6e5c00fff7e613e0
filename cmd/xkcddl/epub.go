package main

import (
	"errors"
	"fmt"

	"github.com/handiism/xkcd-downloader/internal/console"
	"github.com/handiism/xkcd-downloader/internal/epub"
	"github.com/handiism/xkcd-downloader/internal/ioutils"
	"github.com/handiism/xkcd-downloader/internal/model"
	"github.com/spf13/cobra"
)

func newEpubCmd(global *globalOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "epub [N | N-M ...]",
		Short: "Bundle downloaded comics into an EPUB",
		Long:  "Bundle comics from the output directory into one EPUB. Without any N, every downloaded comic is included.",
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := console.NewPrinter(cmd.OutOrStdout(), false)

			specs, err := model.ParseRequests(args)
			if err != nil {
				return &usageError{err: err}
			}

			settings, err := global.settings()
			if err != nil {
				return err
			}

			dest := file
			if dest == "" {
				dest = ioutils.SanitizeFileName(settings.EpubTitle) + ".epub"
			}

			builder := epub.NewBuilder(settings.OutputDir, settings.EpubTitle, settings.EpubAuthor)
			result, err := builder.Build(model.Expand(specs), dest)
			if errors.Is(err, epub.ErrNothingToBundle) {
				printer.Warning(fmt.Sprintf("No downloaded comics found in %s", settings.OutputDir))
				return nil
			}
			if err != nil {
				return err
			}

			if len(result.Skipped) > 0 {
				printer.Warning(fmt.Sprintf("Skipped %d comics not found locally: %s", len(result.Skipped), joinIDs(result.Skipped)))
			}
			printer.Success(fmt.Sprintf("Wrote %s with %d comics", result.Path, len(result.Added)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path of the EPUB to write (default \"{epub_title}.epub\")")
	return cmd
}
