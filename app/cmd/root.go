package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xavierroma/go-rakis/app/log"
	"github.com/xavierroma/go-rakis/app/server"
)

var (
	cfg      = server.DefaultConfig()
	verbose  bool
	jsonLogs bool
)

// rootCmd serves files from --root until the process is interrupted.
var rootCmd = &cobra.Command{
	Use:   "rakis",
	Short: "Serve and store files over a minimal HTTP/1.1 subset.",
	Long: `rakis answers GET requests with the contents of <root><path> and writes
POST bodies to the same location. Connections are handled one at a time.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var opts []log.Option
		if verbose {
			opts = append(opts, log.WithDevMode())
		}
		if jsonLogs {
			opts = append(opts, log.WithJSON())
		}
		log.Init(opts...)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.BufferSize <= 0 {
			return fmt.Errorf("--buffer-size must be positive, got %d", cfg.BufferSize)
		}
		return server.NewServer(cfg).ListenAndServe(cmd.Context())
	},
}

// ExecuteContext executes root command with context.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.Flags().StringVar(&cfg.Addr, "addr", server.DefaultAddr, "Address to listen on.")
	rootCmd.Flags().StringVar(&cfg.Root, "root", cfg.Root, "Directory that request paths are appended to.")
	rootCmd.Flags().IntVar(&cfg.BufferSize, "buffer-size", server.DefaultBufferSize, "Bytes read from each connection.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Log in JSON format.")
}
