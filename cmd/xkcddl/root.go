package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/handiism/xkcd-downloader/internal/config"
	"github.com/handiism/xkcd-downloader/internal/console"
	"github.com/handiism/xkcd-downloader/internal/download"
	xhttp "github.com/handiism/xkcd-downloader/internal/http"
	"github.com/handiism/xkcd-downloader/internal/model"
	"github.com/handiism/xkcd-downloader/internal/xkcd"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// errAborted is returned once the user interrupted a batch and the
// "Aborted!" message has been printed.
var errAborted = errors.New("aborted")

// usageError marks errors in the command line itself. The usage text is
// printed after them.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	output     string
}

// settings loads the settings file, if any, and applies the shared flags.
func (g *globalOptions) settings() (*config.Settings, error) {
	settings := config.DefaultSettings()
	if g.configPath != "" {
		var err error
		settings, err = config.Load(g.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	if g.output != "" {
		settings.OutputDir = g.output
	}
	return settings, nil
}

type rootOptions struct {
	images      bool
	jsons       bool
	delay       float64
	verbose     bool
	dryRun      bool
	noReconcile bool
	thumbnail   int
}

func newRootCmd(out io.Writer) *cobra.Command {
	global := &globalOptions{}
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "xkcddl [flags] [N | N-M ...]",
		Short: "Download xkcd comic images and info JSONs",
		Long: `xkcddl -- Download xkcd comic images and info JSONs

N is a comic number or an inclusive range (e.g. 1045 or 56-129).
Without any N, every comic missing from the output directory is downloaded.`,
		Version:       config.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, global, opts, args)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	cmd.PersistentFlags().StringVarP(&global.configPath, "config", "c", "", "Path to settings file")
	cmd.PersistentFlags().StringVarP(&global.output, "output", "o", "", "Output directory (overrides config)")

	flags := cmd.Flags()
	flags.BoolVarP(&opts.images, "images", "i", false, "Save images only")
	flags.BoolVarP(&opts.jsons, "jsons", "j", false, "Save JSONs only")
	flags.Float64VarP(&opts.delay, "delay", "d", 0.5, "Seconds to wait between comics")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show verbose output")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print the comics that would be downloaded")
	flags.BoolVar(&opts.noReconcile, "no-reconcile", false, "Require explicit comic numbers")
	flags.IntVar(&opts.thumbnail, "thumbnail", 0, "Also write {id}_thumb.jpg no larger than N pixels")

	cmd.AddCommand(newEpubCmd(global))
	cmd.AddCommand(newConfigCmd(global))

	return cmd
}

func runRoot(cmd *cobra.Command, global *globalOptions, opts *rootOptions, args []string) error {
	ctx := cmd.Context()
	printer := console.NewPrinter(cmd.OutOrStdout(), opts.verbose)

	// Arguments are checked before anything touches the network.
	specs, err := model.ParseRequests(args)
	if err != nil {
		return &usageError{err: err}
	}

	settings, err := global.settings()
	if err != nil {
		return err
	}
	applyRootFlags(cmd, opts, settings)
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	if len(specs) == 0 && !settings.Reconcile {
		return &usageError{err: errors.New("no comics specified for download")}
	}
	if !settings.SaveImages && !settings.SaveJSON {
		printer.Warning("Both images and JSONs are disabled, nothing will be saved")
	}

	manager := download.NewManager(settings, xhttp.NewClient(settings), printer.Handle)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	ids := model.Expand(specs)
	if len(specs) == 0 {
		var reconciliation xkcd.Reconciliation
		err := interruptible(ctx, sigCh, func(ctx context.Context) error {
			var err error
			reconciliation, err = manager.Reconcile(ctx)
			return err
		})
		if err != nil {
			return aborted(printer, err)
		}
		if reconciliation.NothingMissing() {
			printer.Success(fmt.Sprintf("Nothing to download, all comics up to #%d are present", reconciliation.Latest))
			return nil
		}
		ids = reconciliation.Missing
	}

	if opts.dryRun {
		if len(specs) > 0 {
			requested := make([]string, len(specs))
			for i, spec := range specs {
				requested[i] = spec.String()
			}
			printer.Info("Requested " + strings.Join(requested, ", "))
		}
		printer.Info(fmt.Sprintf("[Dry run] %d comics: %s", len(ids), joinIDs(ids)))
		return nil
	}

	printer.Title("Downloading comics...")

	report, err := runBatch(ctx, manager, ids, sigCh)
	if err != nil {
		return aborted(printer, err)
	}

	printer.Summary(report)
	return nil
}

// aborted turns a cancellation into errAborted after printing "Aborted!".
// Other errors are returned unchanged.
func aborted(printer *console.Printer, err error) error {
	if errors.Is(err, errAborted) || errors.Is(err, context.Canceled) {
		printer.Error("Aborted!")
		return errAborted
	}
	return err
}

// applyRootFlags overrides loaded settings with the flags that were set.
func applyRootFlags(cmd *cobra.Command, opts *rootOptions, settings *config.Settings) {
	flags := cmd.Flags()
	if opts.images {
		settings.SaveJSON = false
	}
	if opts.jsons {
		settings.SaveImages = false
	}
	if flags.Changed("delay") {
		settings.Delay = opts.delay
	}
	if flags.Changed("thumbnail") {
		settings.ThumbnailMaxSize = opts.thumbnail
	}
	if opts.noReconcile {
		settings.Reconcile = false
	}
}

// runBatch downloads ids while watching for an interrupt.
func runBatch(ctx context.Context, manager *download.Manager, ids []int, sigCh <-chan os.Signal) (*download.Report, error) {
	var report *download.Report
	err := interruptible(ctx, sigCh, func(ctx context.Context) error {
		var err error
		report, err = manager.Run(ctx, ids)
		return err
	})
	return report, err
}

// interruptible runs fn next to a signal watcher. A signal on sigCh makes
// the watcher return errAborted, which cancels the context fn runs with.
func interruptible(ctx context.Context, sigCh <-chan os.Signal, fn func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		return fn(gctx)
	})
	g.Go(func() error {
		select {
		case <-sigCh:
			return errAborted
		case <-done:
			return nil
		}
	})

	return g.Wait()
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, " ")
}
