// page.go implements the "deckhand page" command, which runs the paging
// model on the command line.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/berth-dev/deckhand/internal/paging"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Compute the page index and snap target for a scroll offset",
	Long: `Compute what the carousel would do for the given geometry: the index
under the leading edge at --offset, and the page a drag released there with
--velocity settles on.

Items are --item points long, or --fraction of the viewport when set.`,
	RunE: runPage,
}

type pageArgs struct {
	count     int
	viewport  float64
	item      float64
	fraction  float64
	spacing   float64
	offset    float64
	velocity  float64
	threshold float64
}

var pageFlags pageArgs

func init() {
	f := pageCmd.Flags()
	f.IntVar(&pageFlags.count, "count", 5, "Number of items")
	f.Float64Var(&pageFlags.viewport, "viewport", 400, "Viewport length in points")
	f.Float64Var(&pageFlags.item, "item", 300, "Fixed item length in points")
	f.Float64Var(&pageFlags.fraction, "fraction", 0, "Item length as a fraction of the viewport (overrides --item)")
	f.Float64Var(&pageFlags.spacing, "spacing", 16, "Spacing between items in points")
	f.Float64Var(&pageFlags.offset, "offset", 0, "Scroll offset in points")
	f.Float64Var(&pageFlags.velocity, "velocity", 0, "Release velocity in points per second")
	f.Float64Var(&pageFlags.threshold, "threshold", paging.DefaultVelocityThreshold, "Flick velocity threshold")
}

func runPage(cmd *cobra.Command, args []string) error {
	return printPage(cmd.OutOrStdout(), pageFlags)
}

func (a pageArgs) model() *paging.Model {
	sizing := paging.Fixed(a.item)
	if a.fraction > 0 {
		sizing = paging.Fraction(a.fraction)
	}
	return paging.New(paging.Config{
		ItemCount:         a.count,
		Viewport:          a.viewport,
		Sizing:            sizing,
		Spacing:           a.spacing,
		VelocityThreshold: a.threshold,
	})
}

func printPage(w io.Writer, a pageArgs) error {
	if a.count < 0 {
		return fmt.Errorf("--count must not be negative")
	}
	m := a.model()

	fmt.Fprintf(w, "Item length:  %.1f pt\n", m.ItemLength())
	fmt.Fprintf(w, "Stride:       %.1f pt\n", m.Stride())
	fmt.Fprintf(w, "Content:      %.1f pt\n", m.ContentLength())

	idx, ok := m.IndexAt(a.offset)
	if !ok {
		fmt.Fprintln(w, "Index:        none (no items)")
		return nil
	}
	fmt.Fprintf(w, "Index:        %d of %d\n", idx, m.ItemCount())

	target, _ := m.SnapTarget(a.offset, a.velocity)
	flick := ""
	if la := paging.LookAhead(a.velocity, m.Config().VelocityThreshold); la != 0 {
		flick = fmt.Sprintf(" (flick %+d)", la)
	}
	fmt.Fprintf(w, "Snap target:  %d%s\n", target, flick)
	fmt.Fprintf(w, "Settles at:   %.1f pt\n", m.ItemOffset(target))
	return nil
}
