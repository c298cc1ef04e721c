package profilecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanzi/kubeconf/internal/ui"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active profile",
	RunE:  runCurrent,
}

func runCurrent(cmd *cobra.Command, args []string) error {
	store, err := newStore(cmd)
	if err != nil {
		fmt.Println(ui.Error("%v", err))
		return err
	}

	active, err := store.Active()
	if err != nil {
		fmt.Println(ui.Error("%v", err))
		return err
	}

	fmt.Println(ui.Info("Active profile: %s", active.Name))
	if active.Description != "" {
		fmt.Println(ui.Step("description: %s", active.Description))
	}
	fmt.Println(ui.Step("config: %s", active.ConfigPath))
	return nil
}
