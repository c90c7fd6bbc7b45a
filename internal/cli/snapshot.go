package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dennisdiepolder/monti/calldash/internal/dashboard"
	"github.com/dennisdiepolder/monti/calldash/internal/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(factory BuilderFactory) *cobra.Command {
	var format string
	var section string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one dashboard to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}
			sec, ok := dashboard.ParseSection(section)
			if !ok {
				return fmt.Errorf("unknown section %q", section)
			}

			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
			builder, err := factory(cmd.Context(), logger)
			if err != nil {
				return err
			}

			d := builder.BuildSection(cmd.Context(), sec)
			if format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}
			return renderText(cmd.OutOrStdout(), d)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&section, "section", "all", "Section to render: all, agents, calls or recordings")
	return cmd
}

func renderText(out io.Writer, d *types.Dashboard) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	for _, warn := range d.Warnings {
		fmt.Fprintf(w, "WARNING\t%s\n", warn.Message)
	}
	fmt.Fprintf(w, "Total Calls\t%d\n", d.TotalCalls)
	fmt.Fprintf(w, "Active Agents\t%d\n", d.ActiveAgents)
	fmt.Fprintf(w, "Available Agents\t%d\n", d.AvailableAgents)

	fmt.Fprintln(w, "\nAGENT\tPHONE\tSTATUS")
	if len(d.Agents) == 0 {
		fmt.Fprintln(w, "No agent data available.")
	}
	for _, a := range d.Agents {
		fmt.Fprintf(w, "%s\t%s\t%s\n", a.Name, a.Phone, a.Status)
	}

	fmt.Fprintln(w, "\nCALLER\tPHONE\tDATE/TIME\tDURATION\tSTATUS")
	if len(d.Calls) == 0 {
		fmt.Fprintln(w, "No recent call logs found.")
	}
	for _, c := range d.Calls {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Caller, c.Phone, c.Timestamp, c.Duration, c.Status)
	}

	fmt.Fprintln(w, "\nCALLER\tDATE\tDURATION\tURL")
	if len(d.Recordings) == 0 {
		fmt.Fprintln(w, "No recent recordings found.")
	}
	for _, r := range d.Recordings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Caller, r.Date, r.Duration, r.URL)
	}

	if len(d.Chart) > 0 {
		fmt.Fprintln(w)
		for _, bar := range d.Chart {
			fmt.Fprintf(w, "%s\t%s %d\n", bar.Label, strings.Repeat("#", bar.Count), bar.Count)
		}
	}

	return w.Flush()
}
