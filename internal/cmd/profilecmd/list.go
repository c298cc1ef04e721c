package profilecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kanzi/kubeconf/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := newStore(cmd)
	if err != nil {
		fmt.Println(ui.Error("%v", err))
		return err
	}

	profiles, err := store.List()
	if err != nil {
		fmt.Println(ui.Error("%v", err))
		return err
	}
	active, err := store.Active()
	if err != nil {
		fmt.Println(ui.Error("%v", err))
		return err
	}

	headers := []string{"", "NAME", "DESCRIPTION", "CONFIG"}
	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		marker := ""
		if p.Name == active.Name {
			marker = ui.IconActive
		}
		rows = append(rows, []string{marker, p.Name, p.Description, p.ConfigPath})
	}

	fmt.Println(ui.Title("Profiles"))
	fmt.Println(ui.RenderTable(headers, rows))
	return nil
}
