package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/metaforge-io/metaforge/pkg/console"
	"github.com/metaforge-io/metaforge/pkg/logger"
	"github.com/metaforge-io/metaforge/pkg/mdcmd"
	"github.com/metaforge-io/metaforge/pkg/stringutil"
)

var mdLog = logger.New("cli:md")

func newMDCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "md",
		Short: "Run markdown command documents",
		Long: `Parse markdown documents whose level-1 headings describe create and
update commands, and run them under a directive:

  display   render the parsed commands without contacting the platform
  validate  check the commands against the platform, read-only
  process   execute the commands and emit the provenance document`,
	}

	var upsert bool
	var outputPath string

	runDirective := func(cmd *cobra.Command, path string, directive mdcmd.Directive) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var processor *mdcmd.Processor
		if directive == mdcmd.DirectiveDisplay {
			// Display never touches the platform, so no client is needed.
			processor = mdcmd.NewProcessor(nil)
		} else {
			c, err := opts.buildClient()
			if err != nil {
				return err
			}
			var popts []mdcmd.ProcessorOption
			if upsert {
				popts = append(popts, mdcmd.WithUpsert())
			}
			processor = mdcmd.NewProcessor(c, popts...)
		}

		result, runErr := processor.ProcessDocument(cmd.Context(), string(content), directive)
		if result == nil {
			return runErr
		}

		// A partial result still carries provenance for the commands that
		// did run, so emit it even when processing stopped early.
		for _, notice := range result.Report.Notices {
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage(notice))
		}
		if result.Output != "" {
			if outputPath != "" {
				if err := os.WriteFile(outputPath, []byte(result.Output), 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", outputPath, err)
				}
				fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Wrote "+outputPath))
			} else {
				fmt.Fprint(cmd.OutOrStdout(), result.Output)
			}
		}

		if runErr != nil {
			return runErr
		}
		if !result.Report.OK() {
			return result.Report.Err()
		}
		return nil
	}

	display := &cobra.Command{
		Use:               "display FILE",
		Short:             "Render the commands in a document without contacting the platform",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: CompleteMarkdownDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDirective(cmd, args[0], mdcmd.DirectiveDisplay)
		},
	}

	validate := &cobra.Command{
		Use:               "validate FILE",
		Short:             "Check a document against the platform without changing anything",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: CompleteMarkdownDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDirective(cmd, args[0], mdcmd.DirectiveValidate)
		},
	}

	process := &cobra.Command{
		Use:               "process FILE",
		Short:             "Execute the commands in a document",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: CompleteMarkdownDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDirective(cmd, args[0], mdcmd.DirectiveProcess)
		},
	}

	watch := &cobra.Command{
		Use:               "watch DIR",
		Short:             "Process markdown documents in a directory as they change",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: CompleteDirectories,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			info, err := os.Stat(dir)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}
			defer watcher.Close()
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Watching "+dir+" for markdown changes (Ctrl+C to stop)"))

			// Editors fire several events per save. Collapse bursts per
			// file before re-processing.
			pending := make(map[string]time.Time)
			ticker := time.NewTicker(250 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
						continue
					}
					if !stringutil.IsMarkdownFile(event.Name) {
						continue
					}
					pending[event.Name] = time.Now()
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					mdLog.Errorf("watch error: %v", err)
				case now := <-ticker.C:
					for path, stamp := range pending {
						if now.Sub(stamp) < 500*time.Millisecond {
							continue
						}
						delete(pending, path)
						name := stringutil.NormalizeDocumentName(filepath.Base(path))
						fmt.Fprintln(os.Stderr, console.FormatProgressMessage("Processing "+name))
						if err := runDirective(cmd, path, mdcmd.DirectiveProcess); err != nil {
							fmt.Fprintln(os.Stderr, console.FormatError(err))
							continue
						}
						fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Processed "+name))
					}
				}
			}
		},
	}

	for _, sub := range []*cobra.Command{validate, process, watch} {
		sub.Flags().BoolVar(&upsert, "upsert", false, "treat updates of missing objects as creates")
	}
	for _, sub := range []*cobra.Command{display, validate, process} {
		sub.Flags().StringVarP(&outputPath, "output", "o", "", "write the resulting document to a file instead of stdout")
	}

	cmd.AddCommand(display, validate, process, watch)
	return cmd
}
