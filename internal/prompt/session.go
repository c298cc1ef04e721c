// Package prompt is the interactive session the merge engine and the
// context-switch flow call back into when a human decision is needed. Every
// prompt here is substitutable by a scripted stub in tests.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/kanzi/kubeconf/internal/kubeconfig"
)

// ErrNoContexts is returned by ChooseContext when there is nothing to choose.
var ErrNoContexts = errors.New("no contexts available")

// Session answers the questions the merge engine and switch flow ask.
type Session interface {
	kubeconfig.ConflictResolver
	ChooseContext(contexts []string) (string, error)
}

const (
	choiceKeepExisting = "Keep existing"
	choiceKeepIncoming = "Use incoming"
	choiceKeepBoth     = "Keep both (rename incoming)"
)

// SurveySession prompts on the terminal via survey.
type SurveySession struct{}

var _ Session = (*SurveySession)(nil)

// NewSurveySession returns a terminal-backed session.
func NewSurveySession() *SurveySession {
	return &SurveySession{}
}

// ResolveConflict shows both sides of a divergent conflict and asks which to
// keep. Keep-both is only offered for contexts.
func (s *SurveySession) ResolveConflict(c kubeconfig.Conflict) (kubeconfig.Resolution, error) {
	fmt.Println()
	color.Yellow("Conflict in %s: %s", c.Namespace, c.Name)
	printEntry("existing", c.Existing)
	printEntry("incoming", c.Incoming)

	options := []string{choiceKeepExisting, choiceKeepIncoming}
	if c.Namespace == kubeconfig.NamespaceContexts {
		options = append(options, choiceKeepBoth)
	}

	var answer string
	selectPrompt := &survey.Select{
		Message: fmt.Sprintf("Which version of %s %q should be kept?", c.Namespace, c.Name),
		Options: options,
	}
	if err := survey.AskOne(selectPrompt, &answer); err != nil {
		return kubeconfig.KeepExisting, err
	}

	switch answer {
	case choiceKeepIncoming:
		return kubeconfig.KeepIncoming, nil
	case choiceKeepBoth:
		return kubeconfig.KeepBoth, nil
	default:
		return kubeconfig.KeepExisting, nil
	}
}

// ChooseContext asks the user to pick a context. A single candidate is
// returned without prompting; survey's built-in filter gives fuzzy search
// over larger lists.
func (s *SurveySession) ChooseContext(contexts []string) (string, error) {
	if len(contexts) == 0 {
		return "", ErrNoContexts
	}
	if len(contexts) == 1 {
		return contexts[0], nil
	}

	var answer string
	selectPrompt := &survey.Select{
		Message:  "Select a context:",
		Options:  contexts,
		PageSize: 15,
	}
	if err := survey.AskOne(selectPrompt, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

func printEntry(label string, e kubeconfig.Entry) {
	data, err := yaml.Marshal(e.Attributes)
	if err != nil {
		return
	}
	color.Cyan("  %s:", label)
	fmt.Print(indent(string(data), "    "))
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}
