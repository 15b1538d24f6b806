// config.go implements the "deckhand config" commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/berth-dev/deckhand/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage .deckhand/config.yaml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config",
	Long: `Write .deckhand/config.yaml with the default tuning. An existing file is
left alone unless --force is given. The running demo picks up edits to the
file without a restart.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var forceFlag bool

func init() {
	configInitCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	return initConfig(cmd.OutOrStdout(), root, forceFlag)
}

func initConfig(w io.Writer, root string, force bool) error {
	path := config.Path(root)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}
	if err := config.WriteConfig(root, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	return showConfig(cmd.OutOrStdout(), root)
}

// showConfig prints the config in effect, which is the defaults when the
// file is missing. A file that fails to parse is an error.
func showConfig(w io.Writer, root string) error {
	cfg, err := config.ReadConfig(root)
	if err != nil {
		if _, statErr := os.Stat(config.Path(root)); !os.IsNotExist(statErr) {
			return err
		}
		cfg = config.DefaultConfig()
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
