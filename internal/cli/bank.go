package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"driving-quiz-service/internal/bank"
	"driving-quiz-service/internal/config"
	"driving-quiz-service/internal/domain"
	pgstore "driving-quiz-service/internal/infra/postgres"
	redisstore "driving-quiz-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewBankCmd groups the question bank maintenance commands.
func NewBankCmd(configPath *string) *cobra.Command {
	var bankFile string
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Inspect and import question banks",
	}
	cmd.PersistentFlags().StringVar(&bankFile, "bank", "", "YAML question bank (defaults to the built-in bank)")

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check a question bank and print its size per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := loadBank(bankFile)
			if err != nil {
				return err
			}
			printCounts(cmd.OutOrStdout(), questions)
			return nil
		},
	})

	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the questions of a bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := loadBank(bankFile)
			if err != nil {
				return err
			}
			return printQuestions(cmd.OutOrStdout(), questions, domain.Category(category))
		},
	}
	list.Flags().StringVar(&category, "category", string(domain.CategoryAll), "only list this category")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "import",
		Short: "Upsert a question bank into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := loadBank(bankFile)
			if err != nil {
				return err
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx := cmd.Context()
			if err := runMigrations(ctx, cfg, logger); err != nil {
				return err
			}
			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				return err
			}
			defer pool.Close()

			loader := pgstore.NewQuestionLoader(pool)
			if err := loader.SaveQuestions(ctx, questions); err != nil {
				return err
			}
			logger.Info("question bank imported", zap.Int("questions", len(questions)))
			return invalidateBankCache(ctx, cfg, loader, logger)
		},
	})
	return cmd
}

// invalidateBankCache drops the shared Redis copy of the bank so running servers reload the
// imported questions on their next read.
func invalidateBankCache(ctx context.Context, cfg config.Config, loader redisstore.BankLoader, logger *zap.Logger) error {
	client := newRedisClient(cfg)
	if client == nil {
		return nil
	}
	defer client.Close()
	if err := redisstore.NewBankRepository(client, loader, 0).Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate bank cache: %w", err)
	}
	logger.Info("bank cache invalidated", zap.String("redis", cfg.Redis.Addr))
	return nil
}

func loadBank(path string) ([]domain.Question, error) {
	if path == "" {
		return bank.Default(), nil
	}
	return bank.LoadFile(path)
}

func printCounts(out io.Writer, questions []domain.Question) {
	counts := bank.CountByCategory(questions)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tQUESTIONS")
	for _, info := range domain.Categories() {
		fmt.Fprintf(w, "%s\t%d\n", info.ID, counts[info.ID])
	}
	fmt.Fprintf(w, "total\t%d\n", len(questions))
	_ = w.Flush()
}

func printQuestions(out io.Writer, questions []domain.Question, category domain.Category) error {
	if category != domain.CategoryAll && !category.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tDIFFICULTY\tANSWER\tTEXT")
	for _, q := range questions {
		if category != domain.CategoryAll && q.Category != category {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", q.ID, q.Category, q.Difficulty, q.CorrectOptionID, q.Text)
	}
	return w.Flush()
}
