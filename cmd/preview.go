package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/hotsquiz/internal/quiz"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Generate a quiz and answer it on the command line (no database)",
	Long: `Generate a question set and answer it line by line, or print it as JSON.

This is a stateless developer tool: no database and no history. Useful for
judging question quality and checking provider output.`,
	RunE: runPreview,
}

func init() {
	addQuizFlags(previewCmd)
	previewCmd.Flags().Bool("json", false, "Print the normalized questions as JSON and exit")
}

func runPreview(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	p, err := rt.defaults()
	if err != nil {
		return err
	}
	if p, err = paramsFromFlags(cmd, p); err != nil {
		return err
	}

	// No EventRepo: request logging skipped.
	gen, err := rt.generator(cmd.Context(), nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	out := cmd.OutOrStdout()
	asJSON, _ := cmd.Flags().GetBool("json")
	if !asJSON {
		fmt.Fprintf(out, "%s · %s · goal: %s\n", p.Subject.DisplayName(), p.Level.DisplayName(), p.Aspiration)
		fmt.Fprintf(out, "Generating %d questions...\n\n", p.Count)
	}

	questions, err := gen.Generate(cmd.Context(), p)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(questions)
	}
	return answerInteractively(out, cmd.InOrStdin(), questions)
}

// answerInteractively runs a session over stdin and prints the review.
func answerInteractively(out io.Writer, in io.Reader, questions []quiz.Question) error {
	sess := quiz.NewSession()
	if err := sess.Start(questions); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)

	for i := 0; i < sess.Len(); {
		q, _ := sess.Question(i)
		printQuestion(out, i, sess.Len(), q)

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return nil
		}
		a, err := parseAnswerText(q, scanner.Text())
		if err == nil {
			err = sess.RecordAnswer(i, a)
		}
		if err != nil {
			fmt.Fprintf(out, "%v. Try again.\n\n", err)
			continue
		}
		fmt.Fprintln(out)
		i++
	}

	if err := sess.Submit(); err != nil {
		return err
	}

	for i, it := range sess.Review() {
		mark := "\033[32m✓\033[0m"
		if !it.Correct {
			mark = "\033[31m✗\033[0m"
		}
		fmt.Fprintf(out, "%s %d. expected %s\n", mark, i+1, expectedText(it.Question))
		if it.Question.Rationale != "" {
			fmt.Fprintf(out, "   %s\n", it.Question.Rationale)
		}
	}
	fmt.Fprintf(out, "\n── Score: %.2f%% (%d/%d correct) ──\n", sess.Score(), sess.CorrectCount(), sess.Len())
	return nil
}

func printQuestion(out io.Writer, i, n int, q quiz.Question) {
	level := ""
	if q.CognitiveLevel != "" {
		level = " [" + q.CognitiveLevel + "]"
	}
	fmt.Fprintf(out, "── Question %d/%d%s ──\n", i+1, n, level)
	fmt.Fprintln(out, q.Prompt)

	switch q.Kind() {
	case quiz.KindMultipleChoice:
		for _, opt := range q.MultipleChoice.Options {
			fmt.Fprintf(out, "  %s\n", opt)
		}
		fmt.Fprint(out, "(answer with A-D)")
	case quiz.KindMatching:
		for j, p := range q.Matching.Pairs {
			fmt.Fprintf(out, "  %d) %s\n", j, p.Left)
		}
		fmt.Fprintln(out, "  ──")
		for j, r := range q.Matching.Rights() {
			fmt.Fprintf(out, "  %d) %s\n", j, r)
		}
		fmt.Fprint(out, "(for each left item give a right index, e.g. 1,0,2; - leaves a row blank)")
	}
}

func parseAnswerText(q quiz.Question, text string) (quiz.Answer, error) {
	text = strings.TrimSpace(text)
	if q.Kind() == quiz.KindMatching {
		order, err := quiz.ParseOrder(text)
		if err != nil {
			return quiz.Answer{}, err
		}
		return quiz.OrderAnswer(order), nil
	}
	l, err := quiz.ParseLetter(text)
	if err != nil {
		return quiz.Answer{}, err
	}
	return quiz.LetterAnswer(l), nil
}

func expectedText(q quiz.Question) string {
	if q.Kind() == quiz.KindMatching {
		return quiz.FormatOrder(q.Matching.CorrectOrder)
	}
	return string(q.MultipleChoice.Correct)
}
