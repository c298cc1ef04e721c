package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanzi/kubeconf/internal/backup"
	"github.com/kanzi/kubeconf/internal/ui"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List kubeconfig backups",
	Long: `List the timestamped backups kubeconf has taken, newest first. Restore
one with 'kubeconf restore <name>'.`,
	RunE: runBackups,
}

func runBackups(cmd *cobra.Command, args []string) error {
	if err := loadSettings(); err != nil {
		printError("%v", err)
		return err
	}

	handles, err := backup.NewManager(settings.BackupDir).List()
	if err != nil {
		printError("%v", err)
		return err
	}

	if len(handles) == 0 {
		printInfo("No backups found in %s", settings.BackupDir)
		return nil
	}

	headers := []string{"NAME", "CREATED", "SIZE"}
	rows := make([][]string, 0, len(handles))
	for _, h := range handles {
		rows = append(rows, []string{
			h.Name,
			h.CreatedAt.Format("2006-01-02 15:04:05"),
			formatSize(h.Size),
		})
	}

	fmt.Println(ui.Title(fmt.Sprintf("Backups in %s", settings.BackupDir)))
	fmt.Println(ui.RenderTable(headers, rows))
	return nil
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMG"[exp])
}
