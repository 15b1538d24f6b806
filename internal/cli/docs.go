// docs.go implements the "deckhand docs" command, which renders the
// embedded component reference.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/berth-dev/deckhand/docs"
	"github.com/berth-dev/deckhand/internal/tui"
	"github.com/berth-dev/deckhand/internal/tui/commands"
)

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Show the component reference",
	Long: `Show the reference for one component, or list the topics when no
topic is given. Output is rendered for the terminal; --raw prints markdown.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: docs.Topics(),
	RunE:      runDocs,
}

var docsRaw bool

func init() {
	docsCmd.Flags().BoolVar(&docsRaw, "raw", false, "Print the markdown source")
}

func runDocs(cmd *cobra.Command, args []string) error {
	raw := docsRaw || !tui.IsTTY()
	return printDocs(cmd.OutOrStdout(), args, raw, terminalWidth())
}

func printDocs(w io.Writer, args []string, raw bool, width int) error {
	if len(args) == 0 {
		fmt.Fprintln(w, "Topics:")
		for _, t := range docs.Topics() {
			fmt.Fprintf(w, "  %s\n", t)
		}
		fmt.Fprintln(w, "\nRun: deckhand docs <topic>")
		return nil
	}

	md, err := docs.Get(strings.ToLower(args[0]))
	if err != nil {
		return err
	}
	if raw {
		_, err = io.WriteString(w, md)
		return err
	}
	_, err = io.WriteString(w, commands.RenderMarkdown(md, width))
	return err
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return min(w, 100)
}
