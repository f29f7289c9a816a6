package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"driving-quiz-service/internal/bank"
	"driving-quiz-service/internal/config"
	"driving-quiz-service/internal/domain"
	"driving-quiz-service/internal/i18n"
	"driving-quiz-service/internal/quiz"
	"github.com/spf13/cobra"
)

type playOptions struct {
	category string
	count    int
	lang     string
	bankFile string
	seed     int64
}

// NewPlayCmd walks one user through a practice session in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var opts playOptions
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take a practice test in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := playConfig(*configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				opts.count = cfg.Quiz.QuestionsPerSession
			}
			if opts.lang == "" {
				opts.lang = cfg.Quiz.Language
			}
			if opts.bankFile == "" {
				opts.bankFile = cfg.Quiz.BankFile
			}
			return runPlay(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.category, "category", string(domain.CategoryAll), "category to practise, or all")
	cmd.Flags().IntVar(&opts.count, "count", quiz.DefaultQuestionCount, "questions per session")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "display language (en, tr)")
	cmd.Flags().StringVar(&opts.bankFile, "bank", "", "YAML question bank (defaults to the built-in bank)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed for a reproducible session")
	return cmd
}

// playConfig loads the config file when present; play works without one.
func playConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runPlay(in io.Reader, out io.Writer, opts playOptions) error {
	questions := bank.Default()
	if opts.bankFile != "" {
		loaded, err := bank.LoadFile(opts.bankFile)
		if err != nil {
			return err
		}
		questions = loaded
	}

	rnd := quiz.NewRand()
	if opts.seed != 0 {
		rnd = quiz.NewSeededRand(opts.seed)
	}
	session := quiz.NewSession(questions, quiz.WithRand(rnd), quiz.WithQuestionCount(opts.count))
	if err := session.Start(domain.Category(opts.category)); err != nil {
		return err
	}

	p := &player{
		in:      bufio.NewScanner(in),
		out:     out,
		tr:      i18n.New(i18n.Parse(opts.lang)),
		session: session,
	}
	return p.run()
}

type player struct {
	in      *bufio.Scanner
	out     io.Writer
	tr      i18n.Translator
	session *quiz.Session
}

func (p *player) run() error {
	for {
		switch p.session.State() {
		case quiz.StateAwaitingAnswer:
			if !p.askQuestion() {
				return p.exit()
			}
		case quiz.StateShowingResult:
			p.printf("%s ", p.tr.T("quiz.next"))
			line, ok := p.readLine()
			if !ok || strings.EqualFold(line, "q") {
				return p.exit()
			}
			if err := p.session.Advance(); err != nil {
				return err
			}
		case quiz.StateCompleted:
			if err := p.printResults(); err != nil {
				return err
			}
			p.printf("%s", p.tr.T("quiz.again"))
			line, ok := p.readLine()
			if !ok || !strings.EqualFold(line, "r") {
				return nil
			}
			if err := p.session.Restart(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// askQuestion prompts until a known option is chosen. It reports false when the user quits.
func (p *player) askQuestion() bool {
	q, _ := p.session.Current()
	p.printf("\n%s | %s | %s\n",
		p.tr.CategoryTitle(p.session.Category()),
		p.tr.Tf("quiz.question", p.session.Index()+1, p.session.Total()),
		p.tr.Tf("quiz.correctSoFar", p.session.Correct()))
	p.printf("%s\n", q.Text)
	for _, opt := range q.Options {
		p.printf("  %s) %s\n", opt.ID, opt.Text)
	}

	for {
		p.printf("%s", p.tr.T("quiz.prompt"))
		line, ok := p.readLine()
		if !ok {
			return false
		}
		optionID, found := matchOption(q, line)
		if !found && strings.EqualFold(line, "q") {
			return false
		}
		correct, err := p.session.Answer(optionID)
		if errors.Is(err, domain.ErrOptionNotFound) {
			p.printf("%s\n", p.tr.T("quiz.invalidOption"))
			continue
		}
		if err != nil {
			p.printf("%v\n", err)
			continue
		}
		if correct {
			p.printf("%s\n", p.tr.T("quiz.correct"))
		} else {
			answer, _ := q.CorrectOption()
			p.printf("%s %s: %s) %s\n", p.tr.T("quiz.incorrect"), p.tr.T("quiz.correctAnswer"), answer.ID, answer.Text)
		}
		p.printf("%s: %s\n", p.tr.T("quiz.explanation"), q.Explanation)
		return true
	}
}

// matchOption resolves typed input to an option ID of q, ignoring case. Option IDs win over the
// quit key, so a bank may use "q" as an option.
func matchOption(q domain.Question, input string) (string, bool) {
	for _, opt := range q.Options {
		if strings.EqualFold(opt.ID, input) {
			return opt.ID, true
		}
	}
	return input, false
}

func (p *player) printResults() error {
	summary, err := quiz.Summarize(p.session)
	if err != nil {
		return err
	}
	p.printf("\n== %s ==\n", p.tr.T("quiz.results"))
	p.printf("%s\n", p.tr.Tf("quiz.score", summary.Score))
	p.printf("%s\n", p.tr.TierMessage(summary.Tier))
	p.printf("%s\n", p.tr.Tf("quiz.totals", summary.Total, summary.Correct, summary.Incorrect))

	p.printf("\n%s\n", p.tr.T("quiz.review"))
	for i, entry := range quiz.Review(p.session) {
		verdict := p.tr.T("quiz.reviewWrong")
		if entry.AnsweredCorrectly {
			verdict = p.tr.T("quiz.reviewCorrect")
		}
		p.printf("%d. %s [%s]\n", i+1, entry.Question.Text, verdict)
		p.printf("   %s: %s\n", p.tr.T("quiz.correctAnswer"), entry.CorrectAnswer)
		p.printf("   %s: %s\n", p.tr.T("quiz.explanation"), entry.Explanation)
	}
	return nil
}

func (p *player) exit() error {
	p.session.Exit()
	p.printf("\n%s\n", p.tr.T("quiz.exited"))
	return nil
}

func (p *player) readLine() (string, bool) {
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

func (p *player) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}
