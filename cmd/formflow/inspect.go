package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/probationforms/formflow/internal/journey"
	"github.com/probationforms/formflow/pkg/registry"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the journey structure",
	Long:  `Renders the sections, tasks and pages of the application journey, including each task's prerequisites.`,
	Run: func(cmd *cobra.Command, args []string) {
		md := journeyMarkdown(journey.Sections())

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(md)
			return
		}

		printBanner()
		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
		if err != nil {
			fmt.Print(md)
			return
		}
		out, err := renderer.Render(md)
		if err != nil {
			fmt.Print(md)
			return
		}
		fmt.Print(out)
	},
}

// journeyMarkdown renders the registry as a markdown outline.
func journeyMarkdown(sections []registry.Section) string {
	var b strings.Builder
	b.WriteString("# Approved Premises application journey\n\n")

	for _, section := range sections {
		fmt.Fprintf(&b, "## %s\n\n", section.Title)
		for _, task := range section.Tasks {
			fmt.Fprintf(&b, "### %s (`%s`)\n\n", task.Title, task.ID)
			if len(task.Prerequisites) > 0 {
				fmt.Fprintf(&b, "Requires: `%s`\n\n", strings.Join(task.Prerequisites, "`, `"))
			}
			for _, page := range task.Pages {
				fmt.Fprintf(&b, "- `%s`\n", page.ID)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func printBanner() {
	p := termenv.ColorProfile()
	banner := termenv.String(" formflow ").
		Foreground(p.Color("#ffffff")).
		Background(p.Color("#1d70b8")).
		Bold()
	fmt.Println()
	fmt.Println(banner)
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
