package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/autofix/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Example    lipgloss.Style
	Dim        lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:    plain,
			Heading:    plain,
			Subcommand: plain,
			Flag:       plain,
			Example:    plain,
			Dim:        plain,
		}
	}
	return &HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Example:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.Heading.Render,
		"command":    h.styles.Command.Render,
		"subcommand": h.styles.Subcommand.Render,
		"example":    h.styles.Example.Render,
		"flags":      h.flagUsages,
		"rpad":       rpad,
		"trimRight":  func(s string) string { return strings.TrimRight(s, " \t\n") },
	}
}

// flagUsages styles pflag's usage block. Each line is split at the first
// run of three spaces, which pflag puts between a flag and its usage.
func (h *HelpFormatter) flagUsages(flags *pflag.FlagSet) string {
	lines := strings.Split(strings.TrimSuffix(flags.FlagUsages(), "\n"), "\n")
	for idx, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		names, usage, found := strings.Cut(trimmed, "   ")
		if !found {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		lines[idx] = indent + h.styleNames(names) + "   " + strings.TrimLeft(usage, " ")
	}
	return strings.Join(lines, "\n")
}

// styleNames colours flag names and dims their value type.
func (h *HelpFormatter) styleNames(names string) string {
	tokens := strings.Fields(names)
	for idx, token := range tokens {
		if clean, ok := strings.CutSuffix(token, ","); ok && strings.HasPrefix(clean, "-") {
			tokens[idx] = h.styles.Flag.Render(clean) + ","
			continue
		}
		if strings.HasPrefix(token, "-") {
			tokens[idx] = h.styles.Flag.Render(token)
			continue
		}
		tokens[idx] = h.styles.Dim.Render(token)
	}
	return strings.Join(tokens, " ")
}

// ApplyToCommand applies styled help templates to a Cobra command and all subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	usage := template.Must(template.New("usage").Funcs(h.funcs()).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := usage.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}
