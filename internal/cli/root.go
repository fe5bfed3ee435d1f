// Package cli implements dashctl, a terminal front end to the dashboard
// pipelines and the chat relay.
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"DashPull/internal/domain/models"
	"DashPull/pkg/config"
	applogger "DashPull/pkg/logger"
)

type options struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds the dashctl command tree.
func NewRootCommand() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "dashctl",
		Short: "Inspect DashPull dashboards and talk to the chat relay",
		Long: `dashctl runs the dashboard pipelines locally: it synthesizes the churn
population, loads the FMCG document from a URL or file, and sends chat
messages through a relay.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "config file path (defaults apply when empty)")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log pipeline events to stderr")

	root.AddCommand(newChurnCommand(o), newFMCGCommand(o), newChatCommand(o))
	return root
}

// Execute runs dashctl.
func Execute() error {
	return NewRootCommand().Execute()
}

func (o *options) config() (*config.Config, error) {
	if o.configPath == "" {
		return config.Default()
	}
	return config.Load(o.configPath)
}

func (o *options) logger(cmd *cobra.Command) *applogger.Logger {
	if !o.verbose {
		return applogger.Nop()
	}
	return applogger.NewWriter(cmd.ErrOrStderr(), "debug")
}

func printKPIs(w io.Writer, kpis []models.KPI) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range kpis {
		if k.Description != "" {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", k.Label, k.Value, k.Description)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", k.Label, k.Value)
	}
	return tw.Flush()
}

func validationError(verr interface{}) error {
	return fmt.Errorf("invalid flags: %v", verr)
}
