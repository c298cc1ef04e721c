package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kanzi/kubeconf/internal/backup"
	"github.com/kanzi/kubeconf/internal/config"
	"github.com/kanzi/kubeconf/internal/fsutil"
	"github.com/kanzi/kubeconf/internal/kubeconfig"
	"github.com/kanzi/kubeconf/internal/prompt"
	"github.com/kanzi/kubeconf/internal/ui"
)

var (
	addTarget       string
	addProfile      string
	addOnConflict   string
	addDryRun       bool
	addInteractive  bool
	addBackup       bool
	addNoBackup     bool
	addAdoptContext bool
)

var addCmd = &cobra.Command{
	Use:   "add <kubeconfig-file>",
	Short: "Merge a kubeconfig file into your configuration",
	Long: `Merge the clusters, users and contexts of a kubeconfig file into a
target configuration.

Entries only present in the incoming file are added. Entries that exist
in both files with identical content are left alone. Entries that exist
in both files with different content are conflicts: by default the
existing entry wins and the incoming one is skipped, so nothing is ever
overwritten silently. Use --on-conflict keep-incoming to overwrite, or
--interactive to decide per conflict.

The target is backed up before it is rewritten unless --no-backup is
given; --backup forces a backup even when settings disable them.`,
	Example: `  # Merge into the active profile's config
  kubeconf add ./new-cluster.yaml

  # Preview without writing anything
  kubeconf add ./new-cluster.yaml --dry-run

  # Resolve conflicts one by one
  kubeconf add ./new-cluster.yaml --interactive

  # Merge into a specific profile, overwriting conflicting entries
  kubeconf add ./new-cluster.yaml --profile staging --on-conflict keep-incoming`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addTarget, "target", "t", "", "target kubeconfig file (default: active profile)")
	addCmd.Flags().StringVarP(&addProfile, "profile", "p", "", "target profile (overrides --target)")
	addCmd.Flags().StringVar(&addOnConflict, "on-conflict", "", "conflict policy: keep-existing or keep-incoming (default: settings)")
	addCmd.Flags().BoolVar(&addDryRun, "dry-run", false, "preview changes without applying them")
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "resolve conflicts interactively")
	addCmd.Flags().BoolVar(&addBackup, "backup", false, "back up the target before writing even when settings disable backups")
	addCmd.Flags().BoolVar(&addNoBackup, "no-backup", false, "skip the backup before writing the target")
	addCmd.Flags().BoolVar(&addAdoptContext, "adopt-context", false, "take over the incoming file's current-context")
	addCmd.MarkFlagsMutuallyExclusive("backup", "no-backup")
}

// backupEnabled combines the settings default with the per-invocation flags.
func backupEnabled(defaultOn, force, suppress bool) bool {
	switch {
	case force:
		return true
	case suppress:
		return false
	}
	return defaultOn
}

func runAdd(cmd *cobra.Command, args []string) error {
	if err := loadSettings(); err != nil {
		printError("%v", err)
		return err
	}

	sourcePath := args[0]
	targetPath, err := resolveTarget(addProfile, addTarget)
	if err != nil {
		printError("%v", err)
		return err
	}

	incoming, err := kubeconfig.ParseFile(sourcePath)
	if err != nil {
		printError("%v", err)
		return err
	}
	existing, err := loadOrEmpty(targetPath)
	if err != nil {
		printError("%v", err)
		return err
	}

	printInfo("Merging %s %s %s", sourcePath, ui.IconArrow, targetPath)

	divergent := kubeconfig.DivergentOnly(kubeconfig.Detect(existing, incoming))
	if len(divergent) > 0 {
		printWarn("Found %d conflicting entries:", len(divergent))
		for _, c := range divergent {
			printStep("%s %s", c.Namespace, c.Name)
		}
	}

	opts := kubeconfig.Options{AdoptCurrentContext: addAdoptContext}
	if addInteractive {
		opts.Resolver = prompt.NewSurveySession()
	} else {
		policy := addOnConflict
		if policy == "" {
			policy = settings.OnConflict
		}
		switch policy {
		case config.OnConflictKeepExisting:
			opts.Resolver = kubeconfig.Fixed(kubeconfig.KeepExisting)
		case config.OnConflictKeepIncoming:
			opts.Resolver = kubeconfig.Fixed(kubeconfig.KeepIncoming)
		default:
			err := fmt.Errorf("invalid --on-conflict value %q (use %s or %s)", policy, config.OnConflictKeepExisting, config.OnConflictKeepIncoming)
			printError("%v", err)
			return err
		}

		if len(divergent) > 0 && policy == config.OnConflictKeepIncoming && !addDryRun {
			message := fmt.Sprintf("Proceed with merge? %d conflicting entries will be overwritten.", len(divergent))
			confirmed, err := ui.Confirm(message)
			if err != nil {
				if errors.Is(err, ui.ErrCancelled) {
					printWarn("Merge cancelled")
					return nil
				}
				printError("Prompt failed: %v", err)
				return err
			}
			if !confirmed {
				printWarn("Merge cancelled")
				return nil
			}
		}
	}

	merged, report, err := kubeconfig.Merge(existing, incoming, opts)
	if err != nil {
		printError("Merge failed: %v", err)
		return err
	}

	printReport(existing, merged, report)

	if addDryRun {
		printInfo("Dry run complete - no changes made")
		return nil
	}

	if backupEnabled(settings.ShouldBackup(), addBackup, addNoBackup) {
		if _, err := os.Stat(targetPath); err == nil {
			handle, err := backup.NewManager(settings.BackupDir).Snapshot(targetPath)
			if err != nil {
				printError("Backup failed: %v", err)
				return err
			}
			printStep("backup created: %s", handle.Name)
		}
	}

	data, err := kubeconfig.Serialize(merged)
	if err != nil {
		printError("%v", err)
		return err
	}
	if err := fsutil.WriteFileAtomic(targetPath, data, 0o600); err != nil {
		printError("%v", err)
		return err
	}

	printSuccess("Configuration merged into %s", targetPath)
	return nil
}

func printReport(existing, merged *kubeconfig.Document, report *kubeconfig.Report) {
	fmt.Println()
	fmt.Println(ui.Title("Merge result"))

	headers := []string{"", "BEFORE", "AFTER", "ADDED", "UPDATED", "SKIPPED", "UNCHANGED"}
	var rows [][]string
	for _, ns := range kubeconfig.Namespaces {
		counts := report.CountsFor(ns)
		rows = append(rows, []string{
			string(ns),
			strconv.Itoa(existing.Entries(ns).Len()),
			strconv.Itoa(merged.Entries(ns).Len()),
			strconv.Itoa(counts.Added),
			strconv.Itoa(counts.Updated),
			strconv.Itoa(counts.Skipped),
			strconv.Itoa(counts.Unchanged),
		})
	}
	fmt.Println(ui.RenderTable(headers, rows))

	current := merged.CurrentContext
	if current == "" {
		current = "none"
	}
	printStep("current-context: %s", current)

	for _, resolved := range report.Resolved {
		switch {
		case resolved.RenamedTo != "":
			printStep("%s %q kept both, incoming renamed to %q", resolved.Namespace, resolved.Name, resolved.RenamedTo)
		default:
			printStep("%s %q resolved: %s", resolved.Namespace, resolved.Name, resolved.Resolution)
		}
	}
}
