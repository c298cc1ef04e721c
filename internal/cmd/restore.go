package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kanzi/kubeconf/internal/backup"
	"github.com/kanzi/kubeconf/internal/ui"
)

var (
	restoreTarget  string
	restoreProfile string
	restoreForce   bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore <backup-name>",
	Short: "Restore a kubeconfig from a backup",
	Long: `Replace a kubeconfig file with the contents of a named backup. The
current file is snapshotted first, so a restore can itself be undone.`,
	Example: `  # Restore the active profile's config from a backup
  kubeconf restore config_backup_20260829_101530

  # Restore into a specific file
  kubeconf restore config_backup_20260829_101530 --target ./config`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().StringVarP(&restoreTarget, "target", "t", "", "file to restore into (default: active profile)")
	restoreCmd.Flags().StringVarP(&restoreProfile, "profile", "p", "", "profile to restore into (overrides --target)")
	restoreCmd.Flags().BoolVarP(&restoreForce, "force", "f", false, "restore without confirmation")
}

func runRestore(cmd *cobra.Command, args []string) error {
	if err := loadSettings(); err != nil {
		printError("%v", err)
		return err
	}

	name := args[0]
	targetPath, err := resolveTarget(restoreProfile, restoreTarget)
	if err != nil {
		printError("%v", err)
		return err
	}

	manager := backup.NewManager(settings.BackupDir)
	handle, err := manager.Resolve(name)
	if err != nil {
		if errors.Is(err, backup.ErrBackupNotFound) {
			printError("%v", err)
			printInfo("Run 'kubeconf backups' to see what is available")
			return err
		}
		printError("%v", err)
		return err
	}

	if !restoreForce {
		message := fmt.Sprintf("Restore %s over %s?", handle.Name, targetPath)
		confirmed, err := ui.Confirm(message)
		if err != nil {
			if errors.Is(err, ui.ErrCancelled) {
				printWarn("Restore cancelled")
				return nil
			}
			printError("Prompt failed: %v", err)
			return err
		}
		if !confirmed {
			printWarn("Restore cancelled")
			return nil
		}
	}

	// Snapshot before overwriting so the restore is reversible.
	if _, err := os.Stat(targetPath); err == nil {
		pre, err := manager.Snapshot(targetPath)
		if err != nil {
			printError("Backup of current file failed: %v", err)
			return err
		}
		printStep("current file backed up as %s", pre.Name)
	}

	if err := manager.Restore(handle.Name, targetPath); err != nil {
		printError("%v", err)
		return err
	}

	printSuccess("Restored %s from %s", targetPath, handle.Name)
	return nil
}
