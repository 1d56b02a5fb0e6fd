// Package flagctl implements the operator CLI for flaggingd.
package flagctl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"flaggingd/internal/config"
	"flaggingd/pkg/types"
)

// Execute runs the flagctl command tree.
func Execute() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// buildRootCmd constructs the Cobra command tree wired to the fn* actions.
func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "flagctl",
		Short:         "Operator utilities for the flaggingd daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var baseURL string
	statusCmd := &cobra.Command{
		Use:     "status",
		Short:   "Fetch and print the daemon status",
		Example: "  flagctl status --url http://localhost:8080",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnStatus(cmd.OutOrStdout(), baseURL)
		},
	}
	statusCmd.Flags().StringVar(&baseURL, "url", envStr("FLAGGINGD_URL", "http://localhost:8080"), "Base URL of the running daemon")
	root.AddCommand(statusCmd)

	checkCmd := &cobra.Command{
		Use:   "check-config <file>",
		Short: "Parse and validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnCheckConfig(cmd.OutOrStdout(), args[0])
		},
	}
	root.AddCommand(checkCmd)

	var seedHours int
	seedCmd := &cobra.Command{
		Use:     "seed <dir>",
		Short:   "Write a demo gauge CSV so the daemon has data to model",
		Example: "  flagctl seed ~/flagging/data --hours 72",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := WriteDemoData(args[0], seedHours, time.Now().UTC().Truncate(time.Hour))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d hours of demo samples to %s\n", seedHours, path)
			return nil
		},
	}
	seedCmd.Flags().IntVar(&seedHours, "hours", 72, "Hours of synthetic history to write")
	root.AddCommand(seedCmd)

	return root
}

func fnStatus(w io.Writer, baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL + "/status")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status endpoint returned %s", resp.Status)
	}
	var st types.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return fmt.Errorf("decode status: %w", err)
	}
	fmt.Fprintf(w, "state:          %s\n", st.State)
	fmt.Fprintf(w, "version:        %s\n", st.Version)
	fmt.Fprintf(w, "reaches:        %v\n", st.Reaches)
	fmt.Fprintf(w, "samples:        %d\n", st.SampleCount)
	fmt.Fprintf(w, "safe threshold: %.2f\n", st.SafeThreshold)
	fmt.Fprintf(w, "refreshes:      %d\n", st.RefreshesTotal)
	if st.LastError != "" {
		fmt.Fprintf(w, "last error:     %s\n", st.LastError)
	}
	return nil
}

func fnCheckConfig(w io.Writer, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s OK (addr=%q data_dir=%q)\n", path, cfg.Addr, cfg.DataDir)
	return nil
}

// envStr returns the environment value for key, or def when unset.
func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
