package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/kousuan/internal/problemgen"
	"github.com/abhisek/kousuan/internal/ui/theme"
	"github.com/spf13/cobra"
)

var problemCmd = &cobra.Command{
	Use:   "problem",
	Short: "Ask a single multiple-choice problem at a difficulty level",
	Long: `Ask one practice problem at the given level and check the choice.

Medium and hard problems are written by the configured LLM provider when one
is available and fall back to the built-in generator otherwise. Easy
problems are always generated locally.`,
	RunE: runProblem,
}

func init() {
	problemCmd.Flags().StringP("level", "l", "easy", "Difficulty: easy, medium or hard")
	problemCmd.Flags().Bool("show-answer", false, "Print the problem with its answer instead of asking")
}

func runProblem(cmd *cobra.Command, args []string) error {
	levelVal, _ := cmd.Flags().GetString("level")
	showAnswer, _ := cmd.Flags().GetBool("show-answer")

	level, err := problemgen.ParseLevel(levelVal)
	if err != nil {
		return err
	}

	svc, closeStore, err := newProblemService(cmd)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()
	quiz := svc.Quiz(ctx, level)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, theme.Question.Render(quiz.Question))
	for i, o := range quiz.Options {
		fmt.Fprintf(out, "  %s %s\n", theme.Index.Render(fmt.Sprintf("%d)", i+1)), o)
	}
	if showAnswer {
		fmt.Fprintln(out, theme.Hint.Render("answer: "+quiz.Answer))
		return nil
	}

	fmt.Fprint(out, "\nYour answer: ")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		fmt.Fprintln(out, theme.Hint.Render("(input closed)"))
		return nil
	}
	printVerdict(out, quiz, resolveChoice(scanner.Text(), quiz.Options))
	return nil
}

// resolveChoice accepts an option number or the answer text itself.
func resolveChoice(input string, options []string) string {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return input
}

func printVerdict(out io.Writer, quiz problemgen.Quiz, submitted string) {
	if problemgen.CheckAnswer(submitted, quiz.Problem) {
		fmt.Fprintln(out, theme.Correct.Render("✓ Correct!"))
		return
	}
	fmt.Fprintf(out, "%s Answer: %s\n", theme.Incorrect.Render("✗ Wrong."), quiz.Answer)
}

var optionsCmd = &cobra.Command{
	Use:   "options <answer>",
	Short: "Print the four multiple-choice options built for an answer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		levelVal, _ := cmd.Flags().GetString("level")
		level, err := problemgen.ParseLevel(levelVal)
		if err != nil {
			return err
		}
		for _, o := range problemgen.BuildOptions(args[0], level, problemgen.NewRand()) {
			fmt.Fprintln(cmd.OutOrStdout(), o)
		}
		return nil
	},
}

func init() {
	optionsCmd.Flags().StringP("level", "l", "medium", "Difficulty: easy, medium or hard")
}
