package cmd

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathwheel/internal/lessons"
	"github.com/abhisek/mathwheel/internal/ui/theme"
	"github.com/abhisek/mathwheel/internal/wheel"
)

var learnCmd = &cobra.Command{
	Use:   "learn [operation]",
	Short: "Print the learning cards",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			op, err := wheel.ParseOperation(args[0])
			if err != nil {
				return err
			}
			printLesson(out, lessons.For(op))
			return nil
		}

		printGuide(out)
		for _, l := range lessons.All() {
			printLesson(out, l)
		}
		return nil
	},
}

func printGuide(w io.Writer) {
	var b strings.Builder
	b.WriteString(theme.Title.Render("🎡 HOW TO PLAY"))
	b.WriteString("\n\n" + lessons.Guide.Intro + "\n")
	for i, step := range lessons.Guide.Steps {
		fmt.Fprintf(&b, "\n%d. %s", i+1, step)
	}
	b.WriteString("\n")
	for _, line := range lessons.Guide.Scoring {
		b.WriteString("\n" + line)
	}
	b.WriteString("\n\n" + theme.Hint.Render("💡 "+lessons.Guide.Tip))
	lipgloss.Fprintln(w, card(theme.Primary).Render(b.String()))
}

func printLesson(w io.Writer, l lessons.Lesson) {
	head := lipgloss.NewStyle().Bold(true).Foreground(theme.Operation(l.Operation))

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", head.Render(fmt.Sprintf("%s %s %s", l.Emoji, l.Title, l.Operation.Symbol())))
	fmt.Fprintf(&b, "%s %s says: %s\n\n", l.Character, l.Buddy, l.Description)
	fmt.Fprintf(&b, "%s %s\n\n", theme.Subtitle.Render("Example:"), l.Example)
	fmt.Fprintf(&b, "%s\n%s\n\n", theme.Subtitle.Render("Story:"), l.Story)
	fmt.Fprintf(&b, "%s\n%s", theme.Subtitle.Render("Tip:"), l.Tip)
	lipgloss.Fprintln(w, card(theme.Operation(l.Operation)).Render(b.String()))
}

func card(border color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2).
		MarginBottom(1)
}
