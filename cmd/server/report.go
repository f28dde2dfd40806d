package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a session performance report as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetInt64("user")
		sessionID, _ := cmd.Flags().GetString("session")
		if userID <= 0 {
			return errors.New("--user is required")
		}

		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.service.Report(cmd.Context(), userID, sessionID)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	reportCmd.Flags().Int64("user", 0, "User id")
	reportCmd.Flags().String("session", "", "Session id")
	reportCmd.MarkFlagRequired("session")
}
