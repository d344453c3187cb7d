package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/burn-ballot/cliparse"
	"github.com/danielhkuo/burn-ballot/db"
	"github.com/danielhkuo/burn-ballot/middleware"
	"github.com/danielhkuo/burn-ballot/router"
)

var rootCmd = &cobra.Command{
	Use:           "burn-ballot",
	Short:         "Token-gated single-use ballots",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serveCmd keeps the flag package parsing of cliparse. Bare server flags
// are routed here by commandArgs, so they work with or without the
// subcommand.
var serveCmd = &cobra.Command{
	Use:                "serve [-p port] [-d url] [-t type] [-program-id addr] [-token-program-id addr]",
	Short:              "Serve the ballot API",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(args)
	},
}

func main() {
	// A missing .env file is normal outside development
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	rootCmd.SetArgs(commandArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// commandArgs starts the server when no subcommand is named: no arguments
// at all, or server flags in front
func commandArgs(args []string) []string {
	if len(args) == 0 {
		return []string{serveCmd.Name()}
	}
	switch first := args[0]; {
	case first == "-h", first == "--help", first == "-help":
		return args
	case strings.HasPrefix(first, "-"):
		return append([]string{serveCmd.Name()}, args...)
	}
	return args
}

func serve(args []string) error {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		return err
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		return err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Create router
	mux := router.NewRouter(dbConn, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening",
		"port", cfg.Port,
		"program_id", cfg.ProgramID.Hex(),
		"token_program_id", cfg.TokenProgramID.Hex(),
	)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		return err
	}
	slog.Info("Server closed", "error", err)
	return nil
}
