package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ssargent/brokkr/pkg/codec"
)

// layoutCmd represents the layout command
var layoutCmd = &cobra.Command{
	Use:   "layout [record]",
	Short: "Print the byte layout of the record tables",
	Long: `Print the field tables of the record format: every field's offset,
size and kind, exactly as the codec lays them out on the wire. With no
argument all tables are printed.

Example:
  brokkr layout
  brokkr layout FileHeader`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layouts := codec.Layouts()
		if len(args) == 1 {
			var match *codec.Layout
			for _, l := range layouts {
				if strings.EqualFold(l.Name, args[0]) {
					match = l
					break
				}
			}
			if match == nil {
				names := make([]string, 0, len(layouts))
				for _, l := range layouts {
					names = append(names, l.Name)
				}
				return fmt.Errorf("unknown record %q (want one of %s)", args[0], strings.Join(names, ", "))
			}
			layouts = []*codec.Layout{match}
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, l := range layouts {
			fmt.Fprintf(w, "%s\t%d bytes\t\n", l.Name, l.Size)
			for _, f := range l.Fields() {
				fmt.Fprintf(w, "  %s\t%d\t%d\t%s\n", f.Name, f.Offset, f.Size, f.Kind)
			}
			fmt.Fprintln(w)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
}
