package profilecmd

import (
	"github.com/spf13/cobra"

	"github.com/kanzi/kubeconf/internal/config"
	"github.com/kanzi/kubeconf/internal/profile"
)

// ProfileCmd is the parent command for profile subcommands
var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage kubeconfig profiles",
	Long: `Profiles are named, isolated kubeconfig files. The default profile is
your regular ~/.kube/config; additional profiles keep work, personal or
customer clusters apart.

Available subcommands:
  create  - Create a new profile
  list    - List all profiles
  switch  - Switch the active profile
  current - Show the active profile
  delete  - Delete a profile`,
}

func init() {
	ProfileCmd.AddCommand(createCmd)
	ProfileCmd.AddCommand(listCmd)
	ProfileCmd.AddCommand(switchCmd)
	ProfileCmd.AddCommand(currentCmd)
	ProfileCmd.AddCommand(deleteCmd)
}

// newStore builds the profile store from the settings file. The --settings
// persistent flag is inherited from the root command.
func newStore(cmd *cobra.Command) (profile.Store, error) {
	settingsPath, _ := cmd.Flags().GetString("settings")
	cfg, err := config.Load(settingsPath)
	if err != nil {
		return nil, err
	}
	return profile.NewFileStore(cfg.KubeDir, cfg.ProfilesDir), nil
}
