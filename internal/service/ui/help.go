package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

const helpTemplate = `{{with (or .Long .Short)}}{{.}}
{{end}}
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}{{if .HasAvailableSubCommands}}
  {{StyleUsage (printf "%s [command]" .CommandPath)}}{{end}}
{{if .HasExample}}
{{StyleTitle "EXAMPLES"}}
{{.Example}}
{{end}}{{if .HasAvailableSubCommands}}
{{StyleTitle "COMMANDS"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}{{end}}
{{end}}{{if .HasAvailableLocalFlags}}
{{StyleTitle "FLAGS"}}
{{StyleFlag (.LocalFlags.FlagUsages | trimTrailingWhitespaces)}}
{{end}}{{if .HasAvailableInheritedFlags}}
{{StyleTitle "GLOBAL FLAGS"}}
{{StyleFlag (.InheritedFlags.FlagUsages | trimTrailingWhitespaces)}}
{{end}}`

// CustomizeHelp installs the styled help template on cmd and its children.
func CustomizeHelp(cmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return DescStyle.Render(s) })

	cmd.SetHelpTemplate(helpTemplate)
}
