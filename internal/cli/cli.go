// Package cli wires configuration, storage and services into cobra commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/example/studytrack/internal/api"
	"github.com/example/studytrack/internal/config"
	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/internal/database"
	"github.com/example/studytrack/internal/excel"
	"github.com/example/studytrack/internal/logger"
	"github.com/example/studytrack/internal/notify"
	"github.com/example/studytrack/internal/reminder"
	"github.com/example/studytrack/internal/study"
	"github.com/example/studytrack/pkg/models"
)

const shutdownTimeout = 5 * time.Second

type commandLine struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// NewRootCommand builds the studytrack command tree
func NewRootCommand() *cobra.Command {
	cli := &commandLine{}
	root := &cobra.Command{
		Use:           "studytrack",
		Short:         "Personal study tracker with spaced-repetition revisions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cli.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&cli.cfgFile, "config", "", "config file (yaml, json or toml)")

	root.AddCommand(
		cli.serveCommand(),
		cli.migrateCommand(),
		cli.importCommand(),
		cli.tokenCommand(),
		cli.remindCommand(),
	)
	return root
}

func (cli *commandLine) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cli.cfgFile)
	if err != nil {
		return err
	}
	l, err := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	cli.cfg = cfg
	cli.logger = l
	slog.SetDefault(l)
	return nil
}

func (cli *commandLine) openStore(ctx context.Context) (*database.Store, func(), error) {
	db, err := database.Connect(ctx, cli.cfg.DB.Driver, cli.cfg.DB.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			cli.logger.Error("failed to close database", "err", err)
		}
	}
	return database.NewStore(db), cleanup, nil
}

func (cli *commandLine) newService(store *database.Store) *study.Service {
	return study.NewService(store,
		study.WithLocation(cli.cfg.Location),
		study.WithLogger(cli.logger),
	)
}

func (cli *commandLine) newNotifier() (reminder.Notifier, error) {
	if cli.cfg.Telegram.Token == "" {
		return notify.NewLogNotifier(cli.logger), nil
	}
	return notify.NewTelegramNotifier(cli.cfg.Telegram.Token, cli.logger)
}

func (cli *commandLine) newReminders(store *database.Store, svc *study.Service) (*reminder.Scheduler, error) {
	notifier, err := cli.newNotifier()
	if err != nil {
		return nil, err
	}
	return reminder.New(store, svc.Scheduler(), notifier, reminder.Config{
		StartHour: cli.cfg.Reminders.StartHour,
		EndHour:   cli.cfg.Reminders.EndHour,
		Location:  cli.cfg.Location,
	}, cli.logger), nil
}

func (cli *commandLine) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reminder job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, closeDB, err := cli.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeDB()
			svc := cli.newService(store)

			if cli.cfg.Reminders.Enabled {
				reminders, err := cli.newReminders(store, svc)
				if err != nil {
					return err
				}
				if err := reminders.Start(ctx); err != nil {
					return err
				}
				defer reminders.Stop()
			}

			srv, err := api.NewServer(&api.Options{
				Addr:      cli.cfg.Addr,
				Service:   svc,
				JWTSecret: []byte(cli.cfg.JWT.Secret),
				RateLimit: rate.Limit(cli.cfg.RateLimit.RPS),
				Burst:     cli.cfg.RateLimit.Burst,
				Health:    store.DB().PingContext,
				Logger:    cli.logger,
			})
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				cli.logger.Info("shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				return errors.Wrap(err, "graceful shutdown")
			}
			return <-errCh
		},
	}
}

func (cli *commandLine) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, closeDB, err := cli.openStore(cmd.Context())
			if err != nil {
				return err
			}
			closeDB()
			fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")
			return nil
		},
	}
}

// lookupUser finds a user by id or email
func lookupUser(ctx context.Context, store *database.Store, id int64, email string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case id > 0:
		user, err = store.GetUser(ctx, id)
	case email != "":
		user, err = store.GetUserByEmail(ctx, email)
	default:
		return nil, errors.Wrap(core.ErrInvalidInput, "--user-id or --email is required")
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.Wrap(core.ErrNotFound, "user")
	}
	return user, nil
}

func (cli *commandLine) importCommand() *cobra.Command {
	var (
		userID int64
		email  string
		cfg    = excel.DefaultImportConfig()
	)
	cmd := &cobra.Command{
		Use:   "import-vocabulary FILE",
		Short: "Import vocabulary from an .xlsx or .csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, closeDB, err := cli.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			user, err := lookupUser(ctx, store, userID, email)
			if err != nil {
				return err
			}
			cfg.FilePath = args[0]
			res, err := excel.ImportVocabulary(ctx, store, user.ID, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "processed %d rows: %d created, %d skipped, %d errors\n",
				res.TotalProcessed, res.Created, res.Skipped, len(res.Errors))
			for _, e := range res.Errors {
				fmt.Fprintln(out, "  "+e)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Int64Var(&userID, "user-id", 0, "owner of the imported words")
	f.StringVar(&email, "email", "", "owner of the imported words, by email")
	f.StringVar(&cfg.SheetName, "sheet", "", "sheet to read (default first sheet)")
	f.StringVar(&cfg.WordColumn, "word-column", cfg.WordColumn, "column with the word")
	f.StringVar(&cfg.DefinitionColumn, "definition-column", cfg.DefinitionColumn, "column with the definition")
	f.StringVar(&cfg.SentencesColumn, "sentences-column", cfg.SentencesColumn, "column with example sentences separated by |")
	f.StringVar(&cfg.CategoryColumn, "category-column", cfg.CategoryColumn, "column with the category")
	f.IntVar(&cfg.StartRow, "start-row", cfg.StartRow, "first data row, 1-based")
	return cmd
}

func (cli *commandLine) tokenCommand() *cobra.Command {
	var (
		userID int64
		email  string
		name   string
		create bool
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cli.cfg.JWT.Secret == "" {
				return errors.Wrap(core.ErrInvalidInput, "jwt.secret is not configured")
			}
			ctx := cmd.Context()
			store, closeDB, err := cli.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			user, err := lookupUser(ctx, store, userID, email)
			if core.IsNotFound(err) && create && email != "" {
				user = &models.User{
					Name:         orEmail(name, email),
					Email:        email,
					ReminderHour: reminder.DefaultStartHour,
				}
				err = store.CreateUser(ctx, user)
				if err == nil {
					cli.logger.Info("created user", "id", user.ID, "email", email)
				}
			}
			if err != nil {
				return err
			}

			if ttl <= 0 {
				ttl = cli.cfg.JWT.TTL
			}
			token, err := api.GenerateToken([]byte(cli.cfg.JWT.Secret), user.ID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	f := cmd.Flags()
	f.Int64Var(&userID, "user-id", 0, "user to issue the token for")
	f.StringVar(&email, "email", "", "user to issue the token for, by email")
	f.StringVar(&name, "name", "", "display name when creating the user")
	f.BoolVar(&create, "create", false, "create the user when no user has this email")
	f.DurationVar(&ttl, "ttl", 0, "token lifetime (default jwt.ttl)")
	return cmd
}

func (cli *commandLine) remindCommand() *cobra.Command {
	var userID int64
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send a revision reminder now, to one user or to everyone due this hour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, closeDB, err := cli.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			reminders, err := cli.newReminders(store, cli.newService(store))
			if err != nil {
				return err
			}
			if userID > 0 {
				return reminders.RunManualCheck(ctx, userID)
			}
			sent, err := reminders.CheckAndSendReminders(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %d reminders\n", sent)
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user-id", 0, "only remind this user, regardless of the hour")
	return cmd
}

func orEmail(name, email string) string {
	if name != "" {
		return name
	}
	return email
}

// Execute runs the root command and reports failures on stderr
func Execute(ctx context.Context) int {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
