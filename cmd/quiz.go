package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathwheel/internal/game"
	"github.com/abhisek/mathwheel/internal/lessons"
	"github.com/abhisek/mathwheel/internal/quiz"
	"github.com/abhisek/mathwheel/internal/wheel"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Play in plain text, one question at a time",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		opName, _ := cmd.Flags().GetString("operation")

		var only wheel.Operation
		if opName != "" {
			op, err := wheel.ParseOperation(opName)
			if err != nil {
				return err
			}
			only = op
		}

		questions := quiz.New(nil)
		var spins wheel.Source
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			questions = quiz.New(quiz.NewSeededSource(seed))
			spins = rand.New(rand.NewPCG(seed, ^seed))
		}

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		g := game.New(game.Options{
			Questions:   questions,
			Wheel:       spins,
			OptionCount: rt.cfg.Game.Options,
			Recorder:    rt.store.RoundRepo(),
			Log:         rt.log,
			Only:        only,
		})
		return playLines(ctx, g, rt.stories(ctx), cmd.InOrStdin(), cmd.OutOrStdout(), count)
	},
}

func init() {
	quizCmd.Flags().IntP("count", "n", 5, "Number of questions (0 plays until you quit)")
	quizCmd.Flags().StringP("operation", "o", "", "Only ask one operation, e.g. division or ÷")
	quizCmd.Flags().Uint64("seed", 0, "Seed for a reproducible quiz")
}

// playLines runs the game loop over plain text. An empty line, "q" or end
// of input stops early.
func playLines(ctx context.Context, g *game.Game, stories *lessons.Service, in io.Reader, out io.Writer, count int) error {
	sc := bufio.NewScanner(in)
	fmt.Fprintln(out, "🎡 Mathwheel! Type the answer or its letter. Press Enter on an empty line to stop.")

	for i := 0; count <= 0 || i < count; i++ {
		spin, err := g.Spin()
		if err != nil {
			return err
		}
		round, err := g.Land()
		if err != nil {
			return err
		}

		l := lessons.For(spin.Operation)
		fmt.Fprintf(out, "\n%d. The wheel landed on %s %s %s\n", i+1, l.Emoji, l.Title, spin.Operation.Symbol())
		fmt.Fprintf(out, "   %s\n", round.Question.Text())
		for j, v := range round.Options {
			fmt.Fprintf(out, "   %c) %d\n", 'A'+j, v)
		}

		value, ok, err := readChoice(sc, out, round.Options)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		outcome, err := g.Answer(ctx, value)
		if err != nil {
			return err
		}
		if outcome.Correct {
			fmt.Fprintf(out, "   ⭐ %s %s\n", lessons.PraiseTitle, lessons.PraiseMessage)
			continue
		}
		fmt.Fprintf(out, "   🌈 %s The answer is %s\n", lessons.EncouragementTitle, round.Question.Equation())
		story := stories.Story(ctx, lessons.StoryInput{Question: round.Question, Chosen: value})
		fmt.Fprintln(out, indent(story.Text(), "   "))
	}

	fmt.Fprintf(out, "\nScore: %d/%d   Best streak: %d\n", g.Score(), g.Answered(), g.BestStreak())
	return nil
}

// readChoice prompts until the player picks an option. ok is false when
// they stop.
func readChoice(sc *bufio.Scanner, out io.Writer, options []int) (value int, ok bool, err error) {
	for {
		fmt.Fprint(out, "   > ")
		if !sc.Scan() {
			return 0, false, sc.Err()
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.EqualFold(text, "q") {
			return 0, false, nil
		}
		if v, ok := parseChoice(text, options); ok {
			return v, true, nil
		}
		fmt.Fprintln(out, "   Pick one of the options.")
	}
}

// parseChoice accepts an option letter (A, b, ...) or one of the values.
func parseChoice(text string, options []int) (int, bool) {
	if len(text) == 1 {
		c := strings.ToUpper(text)[0]
		if idx := int(c - 'A'); c >= 'A' && idx < len(options) {
			return options[idx], true
		}
	}
	v, err := strconv.Atoi(text)
	if err != nil || !slices.Contains(options, v) {
		return 0, false
	}
	return v, true
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
