// Package cli implements the clipctl administration commands. Commands talk
// to the store directly through the service layer, so the API server does not
// need to be running.
package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/clip-qa-backend/internal/config"
	"github.com/tbourn/clip-qa-backend/internal/repo"
	"github.com/tbourn/clip-qa-backend/internal/sysutil"
)

const defaultEnvFile = ".env"

// app is the state shared by every subcommand for one invocation.
type app struct {
	envFile string
	dbPath  string

	cfg config.Config
	db  *gorm.DB
}

// NewRootCmd builds the clipctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "clipctl",
		Short:        "Administer the clip Q&A store",
		Long:         "clipctl migrates the schema, bulk-uploads videos from CSV and manages accounts.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", defaultEnvFile, "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite path (overrides DB_PATH)")

	root.AddCommand(
		newMigrateCmd(a),
		newUploadCmd(a),
		newUserCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	if !sysutil.IsTruthy(os.Getenv("SKIP_DOTENV")) {
		err := godotenv.Load(a.envFile)
		// A missing default file is normal outside development.
		if err != nil && !(errors.Is(err, fs.ErrNotExist) && a.envFile == defaultEnvFile) {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DB.Path = a.dbPath
	}
	sysutil.ConfigureLogging(cfg.LogLevel, cfg.LogPretty, cmd.ErrOrStderr())

	db, err := repo.Open(cfg.DB)
	if err != nil {
		return err
	}
	a.cfg, a.db = cfg, db
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	a.db = nil
	return sqlDB.Close()
}
