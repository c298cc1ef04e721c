package profilecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanzi/kubeconf/internal/ui"
)

var switchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch the active profile",
	Long: `Make a profile the active one. Commands that do not name a profile or
file explicitly operate on the active profile's kubeconfig.`,
	Example: `  # Switch to the work profile
  kubeconf profile switch work

  # Back to the system default
  kubeconf profile switch default`,
	Args: cobra.ExactArgs(1),
	RunE: runSwitch,
}

func runSwitch(cmd *cobra.Command, args []string) error {
	name := args[0]

	store, err := newStore(cmd)
	if err != nil {
		fmt.Println(ui.Error("%v", err))
		return err
	}

	if err := store.SetActive(name); err != nil {
		fmt.Println(ui.Error("%v", err))
		return err
	}

	path, err := store.Resolve(name)
	if err != nil {
		fmt.Println(ui.Error("%v", err))
		return err
	}

	fmt.Println(ui.Success("Switched to profile %q", name))
	fmt.Println(ui.Step("config: %s", path))
	return nil
}
