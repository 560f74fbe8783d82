package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"hoteldesk/internal/app"
	"hoteldesk/internal/shared"
	"hoteldesk/internal/storage/sqldb"
)

// newRootCmd builds `hoteldesk <database-name> <port> <username>`.
// Console output goes to cmd.OutOrStdout so tests can capture it.
func newRootCmd(cfg shared.Config, in io.Reader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hoteldesk <database-name> <port> <username>",
		Short: "Interactive console for the hotel database",
		Long: `Opens one connection to the hotel database and offers a numbered menu
for adding customers, rooms, bookings, repairs and staff assignments, and for
running the canned reports.

The password is read from DB_PASSWORD. Type "cancel" at any prompt to abandon
the current operation.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.DBName, cfg.DBPort, cfg.DBUser = args[0], args[1], args[2]
			cmd.SilenceUsage = true
			return runSession(cmd, cfg, in)
		},
	}
	cmd.Flags().StringVar(&cfg.DBDriver, "driver", cfg.DBDriver, "database driver: postgres, mysql or sqlite")
	cmd.Flags().StringVar(&cfg.DBHost, "host", cfg.DBHost, "database host")
	return cmd
}

func runSession(cmd *cobra.Command, cfg shared.Config, in io.Reader) error {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, "\n\n*******************************************************\n"+
		"              User Interface      \t               \n"+
		"*******************************************************\n\n")
	fmt.Fprint(out, "Connecting to database...")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	openCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	gw, err := sqldb.Open(openCtx, sqldb.ConnInfo{
		Driver:   cfg.DBDriver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
	}, out)
	cancel()
	if err != nil {
		fmt.Fprintln(out)
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "Error - Unable to Connect to Database: %v\n", err)
		fmt.Fprintf(errOut, "Make sure you started %s on this machine\n", cfg.DBDriver)
		cmd.SilenceErrors = true
		return err
	}
	fmt.Fprint(out, "Done\n\n")
	defer func() {
		fmt.Fprint(out, "Disconnecting from database...")
		gw.Close()
		fmt.Fprint(out, "Done\n\nBye !\n")
	}()

	con := app.NewConsole(in, out)
	menu := app.NewMenu(app.NewEngine(gw, con), con, app.Operations())
	err = menu.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info().Msg("interrupted")
		fmt.Fprintln(out)
		return nil
	}
	if err != nil {
		log.Warn().Err(err).Msg("session ended")
		cmd.SilenceErrors = true
		return err
	}
	return nil
}
