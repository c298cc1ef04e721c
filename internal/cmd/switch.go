package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanzi/kubeconf/internal/backup"
	"github.com/kanzi/kubeconf/internal/fsutil"
	"github.com/kanzi/kubeconf/internal/kubeconfig"
	"github.com/kanzi/kubeconf/internal/prompt"
	"github.com/kanzi/kubeconf/internal/ui"
)

var (
	switchConfig      string
	switchProfile     string
	switchInteractive bool
	switchNoBackup    bool
)

var switchCmd = &cobra.Command{
	Use:   "switch [context]",
	Short: "Switch the active context of a kubeconfig",
	Long: `Set current-context in a kubeconfig file. Without an argument the
available contexts are listed; with --interactive you pick one from a
searchable list.`,
	Example: `  # Show the available contexts
  kubeconf switch

  # Switch to a context by name
  kubeconf switch prod-cluster

  # Pick a context interactively
  kubeconf switch --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSwitch,
}

func init() {
	switchCmd.Flags().StringVarP(&switchConfig, "config", "c", "", "kubeconfig file to operate on (default: active profile)")
	switchCmd.Flags().StringVarP(&switchProfile, "profile", "p", "", "profile to operate on (overrides --config)")
	switchCmd.Flags().BoolVarP(&switchInteractive, "interactive", "i", false, "pick the context from a list")
	switchCmd.Flags().BoolVar(&switchNoBackup, "no-backup", false, "skip the backup before writing the file")
}

func runSwitch(cmd *cobra.Command, args []string) error {
	if err := loadSettings(); err != nil {
		printError("%v", err)
		return err
	}

	path, err := resolveTarget(switchProfile, switchConfig)
	if err != nil {
		printError("%v", err)
		return err
	}

	doc, err := kubeconfig.ParseFile(path)
	if err != nil {
		printError("%v", err)
		return err
	}

	if doc.Contexts.Len() == 0 {
		printWarn("No contexts found in %s", path)
		return nil
	}

	var target string
	switch {
	case len(args) == 1:
		target = args[0]
	case switchInteractive:
		target, err = prompt.NewSurveySession().ChooseContext(doc.Contexts.Names())
		if err != nil {
			if errors.Is(err, prompt.ErrNoContexts) {
				printWarn("No contexts to choose from")
				return nil
			}
			printError("Prompt failed: %v", err)
			return err
		}
	default:
		// Bare switch is informational only.
		fmt.Println(ui.Title(fmt.Sprintf("Contexts in %s", path)))
		fmt.Println(ui.RenderTable(contextTable(doc)))
		printInfo("Run 'kubeconf switch <context>' to change the active context")
		return nil
	}

	if !doc.Contexts.Has(target) {
		err := fmt.Errorf("context %q not found, available: %v", target, doc.Contexts.Names())
		printError("%v", err)
		return err
	}

	if doc.CurrentContext == target {
		printInfo("Context %q is already active", target)
		return nil
	}

	if settings.ShouldBackup() && !switchNoBackup {
		handle, err := backup.NewManager(settings.BackupDir).Snapshot(path)
		if err != nil {
			printError("Backup failed: %v", err)
			return err
		}
		printVerbose("backup created: %s", handle.Name)
	}

	doc.CurrentContext = target
	data, err := kubeconfig.Serialize(doc)
	if err != nil {
		printError("%v", err)
		return err
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o600); err != nil {
		printError("%v", err)
		return err
	}

	printSuccess("Switched to context %q", target)
	return nil
}
