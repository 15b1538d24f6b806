// detents.go implements the "deckhand detents" command for resolving sheet
// detents against a container height.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/berth-dev/deckhand/internal/detent"
)

var detentsCmd = &cobra.Command{
	Use:   "detents [detent...]",
	Short: "Resolve sheet detents and pick a snap target",
	Long: `Resolve detents against a container height and show where a drag
released at --current with --velocity would snap. Positive velocities expand
the sheet.

Detents are small, medium, large, a height in points (300) or a percentage
(40%). Without arguments the configured detents are used.`,
	RunE: runDetents,
}

type detentArgs struct {
	height     float64
	current    float64
	velocity   float64
	smallFloor float64
	threshold  float64
	specs      []string
}

var detentFlags detentArgs

func init() {
	f := detentsCmd.Flags()
	f.Float64Var(&detentFlags.height, "height", 800, "Container height in points")
	f.Float64Var(&detentFlags.current, "current", -1, "Sheet height at release (omit to skip snapping)")
	f.Float64Var(&detentFlags.velocity, "velocity", 0, "Release velocity in points per second")
	f.Float64Var(&detentFlags.smallFloor, "small-floor", 0, "Minimum height of the small detent (default from config)")
	f.Float64Var(&detentFlags.threshold, "threshold", 0, "Flick velocity threshold (default from config)")
}

func runDetents(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	cfg := loadConfig(root)

	a := detentFlags
	a.specs = args
	if len(a.specs) == 0 {
		a.specs = cfg.Sheet.Detents
	}
	r := cfg.Resolver()
	if a.smallFloor > 0 {
		r.SmallFloor = a.smallFloor
	}
	if a.threshold > 0 {
		r.VelocityThreshold = a.threshold
	}
	return printDetents(cmd.OutOrStdout(), r, a)
}

func printDetents(w io.Writer, r detent.Resolver, a detentArgs) error {
	ds, err := detent.ParseList(a.specs)
	if err != nil {
		return err
	}
	heights := r.Resolve(ds, a.height)

	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.String()
	}
	fmt.Fprintf(w, "Container: %.1f pt\n", a.height)
	fmt.Fprintf(w, "Detents:   %s\n", strings.Join(names, ", "))
	fmt.Fprintln(w, "Heights:")
	for i, h := range heights {
		fmt.Fprintf(w, "  %d  %.1f pt\n", i, h)
	}

	if a.current < 0 {
		return nil
	}
	nearest, ok := detent.Nearest(heights, a.current)
	if !ok {
		fmt.Fprintln(w, "Snap:      none (no detents)")
		return nil
	}
	target, _ := r.Snap(heights, a.current, a.velocity)
	fmt.Fprintf(w, "Nearest:   %d (%.1f pt)\n", nearest, heights[nearest])
	fmt.Fprintf(w, "Snap:      %d (%.1f pt)\n", target, heights[target])
	next, _ := detent.NextCyclic(heights, target)
	fmt.Fprintf(w, "Tap next:  %d (%.1f pt)\n", next, heights[next])
	return nil
}
