package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/abhisek/kousuan/internal/kousuan"
	"github.com/abhisek/kousuan/internal/ui/theme"
	"github.com/spf13/cobra"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Generate a worksheet and answer it in the terminal",
	Long: `Generate a worksheet of drill problems, read one answer per line from
stdin, then print every problem graded and the final score.

With --print the worksheet is printed with its answers and nothing is read.`,
	Example: `  kousuan drill --count 20 --type add-20-carry --type sub-20-borrow
  kousuan drill --tier beginner --print`,
	RunE: runDrill,
}

func init() {
	drillCmd.Flags().IntP("count", "n", 10, "Number of problems")
	drillCmd.Flags().StringSliceP("type", "t", nil, "Problem type ID or label (repeatable); default all types")
	drillCmd.Flags().String("tier", "", "Use every type of this tier when --type is not given")
	drillCmd.Flags().Bool("print", false, "Print the worksheet with answers instead of asking")
}

func runDrill(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	typeVals, _ := cmd.Flags().GetStringSlice("type")
	tierVal, _ := cmd.Flags().GetString("tier")
	printOnly, _ := cmd.Flags().GetBool("print")

	types, err := resolveTypes(typeVals, tierVal)
	if err != nil {
		return err
	}

	gen := kousuan.NewGenerator(kousuan.NewSource(), logger)
	problems := gen.Generate(count, types)

	out := cmd.OutOrStdout()
	if printOnly {
		for i, p := range problems {
			fmt.Fprintf(out, "%s %s   %s\n", theme.Index.Render(fmt.Sprintf("%2d.", i+1)),
				theme.Question.Render(p.Question), theme.Hint.Render(strconv.Itoa(p.Answer)))
		}
		return nil
	}

	answers := askAll(cmd.InOrStdin(), out, problems)
	graded := kousuan.Grade(problems, answers)
	printGraded(out, graded)
	return nil
}

func resolveTypes(typeVals []string, tierVal string) ([]kousuan.ProblemType, error) {
	var types []kousuan.ProblemType
	for _, v := range typeVals {
		t, err := kousuan.ParseType(v)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	if len(types) == 0 && tierVal != "" {
		tier, err := kousuan.ParseTier(tierVal)
		if err != nil {
			return nil, err
		}
		types = kousuan.TypesForTier(tier)
	}
	return types, nil
}

// askAll prints each problem and reads one line per answer. Closing the
// input early leaves the remaining answers empty.
func askAll(in io.Reader, out io.Writer, problems []kousuan.Problem) []string {
	scanner := bufio.NewScanner(in)
	answers := make([]string, 0, len(problems))
	for i, p := range problems {
		fmt.Fprintf(out, "%s %s  ", theme.Index.Render(fmt.Sprintf("%2d.", i+1)), theme.Question.Render(p.Question))
		if !scanner.Scan() {
			fmt.Fprintln(out, theme.Hint.Render("(input closed)"))
			break
		}
		answers = append(answers, scanner.Text())
	}
	return answers
}

func printGraded(out io.Writer, graded []kousuan.Problem) {
	fmt.Fprintln(out)
	for i, p := range graded {
		line := fmt.Sprintf("%s %s %s", theme.Index.Render(fmt.Sprintf("%2d.", i+1)), theme.Mark(*p.Correct), p.Question)
		if *p.Correct {
			fmt.Fprintln(out, line)
			continue
		}
		submitted := *p.Submitted
		if submitted == "" {
			submitted = "(blank)"
		}
		fmt.Fprintf(out, "%s  %s %s\n", line,
			theme.Incorrect.Render(submitted), theme.Hint.Render("→ "+strconv.Itoa(p.Answer)))
	}

	s := kousuan.Score(graded)
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Summary.Render("Score: "+theme.Score(s.Correct, s.Total, s.Percentage)))
}
