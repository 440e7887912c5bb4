package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlorenz/picset/pkg/errors"
	"github.com/mlorenz/picset/pkg/hypermedia"
	"github.com/mlorenz/picset/pkg/pipeline"
	"github.com/mlorenz/picset/pkg/source/htmlpage"
)

// deriveOpts holds the command-line flags for the derive command.
type deriveOpts struct {
	class   string // usage context selecting the breakpoint table
	bust    bool   // append cache-busting timestamps
	noCache bool   // bypass the derivation cache
	jsonOut bool   // machine-readable output
	output  string // write the JSON payload to a file
}

// deriveCommand creates the derive command. It accepts either a URL to fetch
// through the pipeline or a local file (JSON entity document or HTML page).
func (c *CLI) deriveCommand() *cobra.Command {
	opts := deriveOpts{class: pipeline.DefaultClass}

	cmd := &cobra.Command{
		Use:   "derive <url | file>",
		Short: "Derive srcset strings from an image resource",
		Long: `Derive responsive-image srcset strings from a hypermedia image resource.

The argument is either a URL (fetched through the caching pipeline) or a
local file holding an entity document (JSON) or an HTML page.

Examples:
  picset derive https://api.example.com/images/42
  picset derive https://api.example.com/images/42 --class narrow --bust
  picset derive testdata/image.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDerive(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.class, "class", opts.class, "usage context (e.g. tile, narrow)")
	cmd.Flags().BoolVar(&opts.bust, "bust", false, "append cache-busting timestamps to every descriptor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the derivation cache")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the payload as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON payload to a file")

	return cmd
}

func (c *CLI) runDerive(cmd *cobra.Command, target string, opts deriveOpts) error {
	var result *pipeline.Result
	var err error

	if isLocalFile(target) {
		result, err = c.deriveLocal(target, opts)
	} else {
		result, err = c.deriveRemote(cmd, target, opts)
	}
	if err != nil {
		return err
	}

	if opts.output != "" {
		data, err := json.MarshalIndent(result.Payload, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.output, err)
		}
		printFile(opts.output)
		return nil
	}

	if opts.jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printDerived(target, opts.class, result)
	return nil
}

// deriveLocal hydrates an entity from a file on disk and derives in-process,
// skipping the fetch and cache stages.
func (c *CLI) deriveLocal(path string, opts deriveOpts) (*pipeline.Result, error) {
	img, err := hydrateFile(path)
	if err != nil {
		return nil, err
	}
	result := &pipeline.Result{Payload: pipeline.Derive(img, opts.class, opts.bust)}
	return result, nil
}

// hydrateFile reads an entity document or HTML page from disk and expands it
// into an image entity.
func hydrateFile(path string) (*hypermedia.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var img *hypermedia.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		img, err = htmlpage.Extract(strings.NewReader(string(data)))
	default:
		img, err = hypermedia.UnmarshalImage(data)
	}
	if err != nil {
		return nil, err
	}
	if !img.Hydrated() {
		return nil, errors.New(errors.ErrCodeNotHydrated,
			"%s is a bare reference with no link data", path)
	}
	return img, nil
}

// deriveRemote runs the full fetch pipeline with a spinner.
func (c *CLI) deriveRemote(cmd *cobra.Command, url string, opts deriveOpts) (*pipeline.Result, error) {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return nil, err
	}

	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(cmd.Context(), "Fetching "+url)
	if !opts.jsonOut {
		spinner.Start()
		defer spinner.Stop()
	}

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		URL:       url,
		Class:     opts.class,
		CacheBust: opts.bust,
	})
	if err != nil {
		if spinner.Cancelled() {
			return nil, cmd.Context().Err()
		}
		return nil, err
	}

	prog.done(fmt.Sprintf("Derived %d media types", len(result.Sources)))
	return result, nil
}

// printDerived renders the human-readable payload summary.
func printDerived(target, class string, result *pipeline.Result) {
	printSuccess("Derived srcset for class %s", StyleHighlight.Render(class))
	printNewline()

	srcset := result.Srcset
	if srcset == "" {
		srcset = StyleDim.Render("(no classifiable links)")
	}
	printKeyValue("srcset", srcset)
	printKeyValue("default", result.DefaultLink)
	for _, src := range result.Sources {
		printDetail("%s %s %s", src.MediaType, iconArrow, src.Srcset)
	}

	printDeriveStats(len(result.Sources), descriptorCount(result.Srcset), result.CacheInfo.PayloadHit)
	printNewline()
	printNextStep("Inspect the classified links", "picset inspect "+target)
}

func descriptorCount(srcset string) int {
	if srcset == "" {
		return 0
	}
	return strings.Count(srcset, ",") + 1
}

func isLocalFile(target string) bool {
	info, err := os.Stat(target)
	return err == nil && !info.IsDir()
}
