package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlorenz/picset/pkg/config"
	"github.com/mlorenz/picset/pkg/srcset"
)

// contextsCommand creates the contexts command, which lists the registered
// usage contexts and their breakpoint widths.
func (c *CLI) contextsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "contexts",
		Short: "List usage contexts and their breakpoint widths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.RegisterContexts(); err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Usage contexts"))
			for _, name := range srcset.Contexts() {
				printKeyValue(name, formatWidths(srcset.Table(name)))
			}
			printNewline()
			printNextStep("Add custom contexts", "picset serve --config "+defaultConfigFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigFile, "config file with custom contexts")
	return cmd
}

// formatWidths renders a breakpoint table in canonical slot order.
func formatWidths(widths srcset.BreakpointTable) string {
	parts := make([]string, 0, len(widths))
	for _, key := range srcset.CanonicalKeys() {
		parts = append(parts, string(key)+"="+strconv.Itoa(widths[key])+"w")
	}
	return strings.Join(parts, " ")
}
