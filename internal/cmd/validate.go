package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/kanzi/kubeconf/internal/kubeconfig"
	"github.com/kanzi/kubeconf/internal/ui"
)

var (
	validateConfig  string
	validateProfile string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a kubeconfig file",
	Long: `Check a kubeconfig file for structural problems: contexts referencing
missing clusters or users, an unresolvable current-context, and
unexpected apiVersion or kind values. The file is also run through the
standard client-go loader so anything kubectl would reject is reported.`,
	Example: `  # Validate the active profile's config
  kubeconf validate

  # Validate a specific file
  kubeconf validate --config ./team.yaml`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfig, "config", "c", "", "kubeconfig file to validate (default: active profile)")
	validateCmd.Flags().StringVarP(&validateProfile, "profile", "p", "", "profile to validate (overrides --config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := loadSettings(); err != nil {
		printError("%v", err)
		return err
	}

	path, err := resolveTarget(validateProfile, validateConfig)
	if err != nil {
		printError("%v", err)
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		printError("No kubeconfig file found at %s", path)
		return err
	}

	printInfo("Validating %s", path)

	doc, err := kubeconfig.ParseFile(path)
	if err != nil {
		printError("%v", err)
		return err
	}

	issues := doc.Validate()

	// Cross-check with the loader kubectl uses. It catches problems the
	// structural pass does not model, like empty server URLs.
	if clientConfig, loadErr := clientcmd.LoadFromFile(path); loadErr != nil {
		issues = append(issues, kubeconfig.Issue{
			Severity: kubeconfig.SeverityError,
			Message:  fmt.Sprintf("client-go cannot load this file: %v", loadErr),
		})
	} else if validateErr := clientcmd.Validate(*clientConfig); validateErr != nil {
		issues = append(issues, kubeconfig.Issue{
			Severity: kubeconfig.SeverityWarning,
			Message:  fmt.Sprintf("client-go validation: %v", validateErr),
		})
	}

	var errorCount, warningCount int
	for _, issue := range issues {
		switch issue.Severity {
		case kubeconfig.SeverityError:
			errorCount++
			printError("%s", issue)
		default:
			warningCount++
			printWarn("%s", issue)
		}
	}

	fmt.Println()
	printStep("clusters: %d, users: %d, contexts: %d", doc.Clusters.Len(), doc.Users.Len(), doc.Contexts.Len())
	current := doc.CurrentContext
	if current == "" {
		current = "none"
	}
	printStep("current-context: %s", current)

	if errorCount > 0 {
		err := fmt.Errorf("validation failed with %d errors, %d warnings", errorCount, warningCount)
		fmt.Println()
		printError("%v", err)
		return err
	}
	if warningCount > 0 {
		fmt.Println()
		printWarn("Valid with %d warnings", warningCount)
		return nil
	}

	fmt.Println()
	fmt.Println(ui.Success("%s is valid", path))
	return nil
}
