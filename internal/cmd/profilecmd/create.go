package profilecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanzi/kubeconf/internal/ui"
)

var (
	createDescription string
	createActivate    bool
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new profile",
	Long: `Create a profile with its own kubeconfig file. The file is seeded with
an empty document; fill it with 'kubeconf add --profile <name>'.`,
	Example: `  # Create a work profile
  kubeconf profile create work

  # Create and immediately switch to it
  kubeconf profile create work --activate`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "profile description")
	createCmd.Flags().BoolVar(&createActivate, "activate", false, "switch to the new profile after creating it")
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	store, err := newStore(cmd)
	if err != nil {
		fmt.Println(ui.Error("%v", err))
		return err
	}

	created, err := store.Create(name, createDescription)
	if err != nil {
		fmt.Println(ui.Error("%v", err))
		return err
	}

	fmt.Println(ui.Success("Profile %q created", created.Name))
	fmt.Println(ui.Step("config: %s", created.ConfigPath))

	if createActivate {
		if err := store.SetActive(name); err != nil {
			fmt.Println(ui.Error("%v", err))
			return err
		}
		fmt.Println(ui.Success("Switched to profile %q", name))
	}
	return nil
}
