package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowbasis/pkg/basis"
	"github.com/matzehuels/flowbasis/pkg/io"
	"github.com/matzehuels/flowbasis/pkg/trie"
)

// trieCommand creates the trie command for visualizing the candidate trie.
func (c *CLI) trieCommand() *cobra.Command {
	var (
		output   string
		dot      bool
		maxNodes int
	)

	cmd := &cobra.Command{
		Use:   "trie FILE",
		Short: "Render the candidate trie of a search (debug tool)",
		Long: `Run a search over FILE and render the trie that recorded every tested
candidate. Each root-to-box path is one column set, smallest column first.`,
		Example: `  # SVG of the whole trie
  flowbasis trie network.txt -o trie.svg

  # Raw DOT, first 200 nodes only
  flowbasis trie network.txt --dot --max-nodes 200 -o trie.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			m, err := io.ImportMatrix(args[0])
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			t := trie.New(m.Cols(), m.Rows())
			e, err := basis.New(m, basis.Options{Registry: t, Logger: logger})
			if err != nil {
				return err
			}
			s := e.Run()
			prog.done(fmt.Sprintf("Searched %s: %d checked, %d repeats", args[0], s.Checked(), s.Repeats))

			labels := columnLabels(m.Cols())
			var data []byte
			if dot {
				data = []byte(t.ToDOT(labels, maxNodes))
			} else {
				data, err = t.RenderSVG(labels, maxNodes)
				if err != nil {
					return fmt.Errorf("render: %w", err)
				}
			}

			if err := writeFile(c.out, data, output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			if output != "" {
				st := c.status()
				st.success("Trie generated")
				st.field("Nodes", strconv.Itoa(t.Nodes()))
				st.field("Sets", strconv.Itoa(t.Marked()))
				st.field("Feasible", strconv.Itoa(s.TotalFeasible))
				st.wrote(output)
				if dot {
					st.hint("Render with", "dot -Tsvg "+output)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&dot, "dot", false, "write Graphviz DOT instead of SVG")
	cmd.Flags().IntVar(&maxNodes, "max-nodes", 500, "maximum trie nodes to draw (0 for all)")

	return cmd
}

// columnLabels names columns c0, c1, ...
func columnLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = "c" + strconv.Itoa(i)
	}
	return labels
}
