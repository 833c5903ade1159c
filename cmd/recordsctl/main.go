package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/redema/records/client"
	"github.com/redema/records/internal/config"
	"github.com/redema/records/internal/logger"
)

var serviceURL string
var debug bool
var logLevel string
var timeout time.Duration

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "recordsctl",
		Short:         "recordsctl creates, reads, updates and deletes records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Console(debug, logLevel)
			if debug {
				log.Debug().Msg("debug logging enabled")
			}
		},
	}

	defaults := config.Client{BaseURL: "http://localhost:5000", HTTPTimeout: 30 * time.Second, LogLevel: "info"}
	if cfg, err := config.NewClient(); err == nil {
		defaults = *cfg
	}

	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", defaults.BaseURL, "Base URL of the record service")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", defaults.Debug, "Enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaults.LogLevel, "Log level when --debug is off (debug, info, warn, error)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaults.HTTPTimeout, "Per-command timeout")

	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newGetCmd())

	return rootCmd
}

func newCreateCmd() *cobra.Command {
	var name, trackID string
	var age int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a record",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) (client.Result, error) {
				return c.Create(ctx, name, age, parseTrackID(trackID))
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Record name")
	cmd.Flags().IntVar(&age, "age", 0, "Record age")
	cmd.Flags().StringVar(&trackID, "track-id", "", "Track identifier; integers are sent as numbers")
	return cmd
}

func newUpdateCmd() *cobra.Command {
	var id, name, trackID, level string
	var age int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a record",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []client.UpdateOption
			if cmd.Flags().Changed("transaction-level") {
				opts = append(opts, client.WithTransactionLevel(level))
			}
			return withClient(cmd, func(ctx context.Context, c *client.Client) (client.Result, error) {
				return c.Update(ctx, id, name, age, parseTrackID(trackID), opts...)
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Record ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "Record name")
	cmd.Flags().IntVar(&age, "age", 0, "Record age")
	cmd.Flags().StringVar(&trackID, "track-id", "", "Track identifier; integers are sent as numbers")
	cmd.Flags().StringVar(&level, "transaction-level", client.DefaultTransactionLevel, "Transaction level tag")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a record",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) (client.Result, error) {
				return c.Remove(ctx, id)
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Record ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) (client.Result, error) {
				return c.FetchAll(ctx)
			})
		},
	}
}

func newGetCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a record by ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, c *client.Client) (client.Result, error) {
				return c.FetchByID(ctx, id)
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Record ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// withClient builds a client from the persistent flags, runs call under the
// command timeout and prints the result.
func withClient(cmd *cobra.Command, call func(context.Context, *client.Client) (client.Result, error)) error {
	c, err := client.New(serviceURL,
		client.WithHTTPTimeout(timeout),
		client.WithDebugLogging(debug),
		client.WithLogger(log.Logger),
		client.WithUserAgent("recordsctl"),
	)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	start := time.Now()
	res, err := call(ctx, c)
	if err != nil {
		log.Error().
			Err(err).
			Str("command", cmd.Name()).
			Dur("elapsed", time.Since(start)).
			Msg("request failed")
		return err
	}
	return printJSON(cmd.OutOrStdout(), res)
}

func printJSON(w io.Writer, res client.Result) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, res, "", "  "); err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// parseTrackID sends integer-looking ids as JSON numbers and omits empty ones.
func parseTrackID(s string) any {
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}
