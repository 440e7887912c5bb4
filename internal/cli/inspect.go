package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mlorenz/picset/pkg/hypermedia"
	"github.com/mlorenz/picset/pkg/pipeline"
	"github.com/mlorenz/picset/pkg/srcset"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	class       string
	noCache     bool
	interactive bool
}

// inspectCommand creates the inspect command, which shows how an image's
// variant links classify into the media-type and size grid.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{class: pipeline.DefaultClass}

	cmd := &cobra.Command{
		Use:   "inspect <url | file>",
		Short: "Show the classified variant links of an image resource",
		Long: `Inspect how an image resource's variant links classify into the
media-type and size grid, along with the pixel width each slot maps to
in the chosen usage context.

Examples:
  picset inspect https://api.example.com/images/42
  picset inspect page.html --class narrow --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.class, "class", opts.class, "usage context (e.g. tile, narrow)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the entity cache")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse media types interactively")

	return cmd
}

func (c *CLI) runInspect(cmd *cobra.Command, target string, opts inspectOpts) error {
	img, err := c.loadImage(cmd, target, opts.noCache)
	if err != nil {
		return err
	}

	byType := srcset.Classify(img.LinksWithClass(opts.class))
	if byType.Len() == 0 {
		printWarning("No classifiable links carry class %q", opts.class)
		return nil
	}

	if opts.interactive {
		return runInspectTUI(byType, opts.class)
	}

	fmt.Println(StyleTitle.Render("Classified links") + " " + StyleDim.Render("class="+opts.class))
	fmt.Println(classificationTable(byType, opts.class))
	printDetail("%d media types", byType.Len())
	return nil
}

// loadImage hydrates the target from disk or over HTTP through the entity
// cache.
func (c *CLI) loadImage(cmd *cobra.Command, target string, noCache bool) (*hypermedia.Image, error) {
	if isLocalFile(target) {
		return hydrateFile(target)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return nil, err
	}

	spinner := newSpinnerWithContext(cmd.Context(), "Fetching "+target)
	spinner.Start()
	defer spinner.Stop()

	doc, _, err := runner.FetchDocument(cmd.Context(), target)
	if err != nil {
		return nil, err
	}
	return pipeline.Hydrate(doc)
}

// classificationTable renders the media-type grid with the widths of the
// class's breakpoint table.
func classificationTable(byType *srcset.LinksByType, class string) string {
	widths := srcset.Table(class)

	var rows [][]string
	for _, mediaType := range byType.Types() {
		sizes, _ := byType.Get(mediaType)
		for _, key := range srcset.CanonicalKeys() {
			url, ok := sizes[key]
			if !ok {
				continue
			}
			rows = append(rows, []string{
				mediaType,
				string(key),
				strconv.Itoa(widths[key]) + "w",
				url,
			})
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Media Type", "Size", "Width", "URL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 3 {
				return StyleLink
			}
			return StyleValue
		}).
		String()
}
