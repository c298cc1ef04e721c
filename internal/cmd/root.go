package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kanzi/kubeconf/internal/cmd/profilecmd"
	"github.com/kanzi/kubeconf/internal/config"
	"github.com/kanzi/kubeconf/internal/kubeconfig"
	"github.com/kanzi/kubeconf/internal/profile"
	"github.com/kanzi/kubeconf/internal/ui"
	"github.com/kanzi/kubeconf/internal/version"
)

var (
	// Global flags
	settingsFile string
	verbose      bool

	// Tool settings, loaded on demand by commands
	settings *config.Settings

	// Version is set by main from the build-time version
	Version = "dev"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "kubeconf",
	Short: "Manage kubeconfig files, profiles and contexts",
	Long: `kubeconf merges kubeconfig files from multiple sources into
profile-scoped configurations, switches the active context, resolves
naming conflicts between clusters, users and contexts, and keeps
timestamped backups of every file it touches.

It never talks to a cluster: everything operates on local files.`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		notifyUpdate()
	},
}

func init() {
	// Note: -V for verbose to avoid conflict with fang's -v/--version
	RootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (default is ~/.kube/kubeconf.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "verbose output")

	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(switchCmd)
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(backupsCmd)
	RootCmd.AddCommand(restoreCmd)
	RootCmd.AddCommand(profilecmd.ProfileCmd)
}

// loadSettings loads the settings file, falling back to defaults when absent
func loadSettings() error {
	var err error
	settings, err = config.Load(settingsFile)
	return err
}

// newStore returns the profile store rooted at the configured directories
func newStore() profile.Store {
	return profile.NewFileStore(settings.KubeDir, settings.ProfilesDir)
}

// resolveTarget picks the kubeconfig path a command operates on: an explicit
// profile wins over an explicit path, which wins over the active profile.
func resolveTarget(profileName, explicitPath string) (string, error) {
	if profileName != "" {
		return newStore().Resolve(profileName)
	}
	if explicitPath != "" {
		return explicitPath, nil
	}
	active, err := newStore().Active()
	if err != nil {
		return "", err
	}
	return active.ConfigPath, nil
}

// loadOrEmpty parses the kubeconfig at path, treating a missing file as an
// empty document.
func loadOrEmpty(path string) (*kubeconfig.Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return kubeconfig.NewDocument(), nil
	}
	return kubeconfig.ParseFile(path)
}

// notifyUpdate prints a one-line notice when a newer release exists. Checks
// go out at most once a day and only when attached to a terminal.
func notifyUpdate() {
	if !ui.IsTTY() {
		return
	}

	result := version.CachedResult(Version)
	if result == nil && version.ShouldCheck() {
		checked, err := version.CheckForUpdate(Version)
		if err != nil {
			return
		}
		result = checked
		_ = version.SaveCache(checked.LatestVersion, checked.ReleaseURL)
	}

	if result != nil && result.UpdateAvailable {
		fmt.Println(ui.Muted("kubeconf %s is available (current: %s): %s", result.LatestVersion, result.CurrentVersion, result.ReleaseURL))
	}
}

// Helper print functions using the UI package
func printSuccess(format string, a ...interface{}) {
	fmt.Println(ui.Success(format, a...))
}

func printError(format string, a ...interface{}) {
	fmt.Println(ui.Error(format, a...))
}

func printWarn(format string, a ...interface{}) {
	fmt.Println(ui.Warning(format, a...))
}

func printInfo(format string, a ...interface{}) {
	fmt.Println(ui.Info(format, a...))
}

func printStep(format string, a ...interface{}) {
	fmt.Println(ui.Step(format, a...))
}

func printVerbose(format string, a ...interface{}) {
	if verbose {
		fmt.Println(ui.Muted("[debug] "+format, a...))
	}
}
