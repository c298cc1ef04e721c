package profilecmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanzi/kubeconf/internal/ui"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Long: `Delete a profile, its registry entry and its kubeconfig file. The
default profile cannot be deleted. Deleting the active profile switches
back to default.`,
	Example: `  # Delete a profile with confirmation
  kubeconf profile delete old-customer

  # Delete without asking
  kubeconf profile delete old-customer --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "delete without confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]

	store, err := newStore(cmd)
	if err != nil {
		fmt.Println(ui.Error("%v", err))
		return err
	}

	if !deleteForce {
		message := fmt.Sprintf("Delete profile %q and its kubeconfig file?", name)
		confirmed, err := ui.Confirm(message)
		if err != nil {
			if errors.Is(err, ui.ErrCancelled) {
				fmt.Println(ui.Warning("Deletion cancelled"))
				return nil
			}
			fmt.Println(ui.Error("Prompt failed: %v", err))
			return err
		}
		if !confirmed {
			fmt.Println(ui.Warning("Deletion cancelled"))
			return nil
		}
	}

	if err := store.Delete(name); err != nil {
		fmt.Println(ui.Error("%v", err))
		return err
	}

	fmt.Println(ui.Success("Profile %q deleted", name))
	return nil
}
