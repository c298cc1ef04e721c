package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kanzi/kubeconf/internal/kubeconfig"
	"github.com/kanzi/kubeconf/internal/ui"
)

var listConfig string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the contexts of a kubeconfig",
	Long: `List all contexts of a kubeconfig file with their cluster, user and
default namespace. The active context is marked.`,
	Example: `  # List contexts of the active profile
  kubeconf list

  # List contexts of a specific file
  kubeconf list --config ./team.yaml`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listConfig, "config", "c", "", "kubeconfig file to list contexts from (default: active profile)")
}

func runList(cmd *cobra.Command, args []string) error {
	if err := loadSettings(); err != nil {
		printError("%v", err)
		return err
	}

	path, err := resolveTarget("", listConfig)
	if err != nil {
		printError("%v", err)
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		printError("No kubeconfig file found at %s", path)
		return err
	}

	doc, err := loadOrEmpty(path)
	if err != nil {
		printError("%v", err)
		return err
	}

	if doc.Contexts.Len() == 0 {
		printWarn("No contexts found in %s", path)
		return nil
	}

	fmt.Println(ui.Title(fmt.Sprintf("Contexts in %s", path)))
	fmt.Println(ui.RenderTable(contextTable(doc)))
	return nil
}

// contextTable builds the table shown by list and by a bare switch.
func contextTable(doc *kubeconfig.Document) ([]string, [][]string) {
	headers := []string{"", "NAME", "CLUSTER", "USER", "NAMESPACE"}
	var rows [][]string

	for _, name := range doc.Contexts.Names() {
		ctx, _ := doc.Contexts.Get(name)

		marker := ""
		if name == doc.CurrentContext {
			marker = ui.IconActive
		}
		namespace := ctx.Ref("namespace")
		if namespace == "" {
			namespace = "default"
		}
		rows = append(rows, []string{marker, name, ctx.Ref("cluster"), ctx.Ref("user"), namespace})
	}

	return headers, rows
}
