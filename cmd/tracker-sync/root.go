package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github-pr-watcher/internal/tracker"
)

const (
	repoFlag    = "repo"
	branchFlag  = "branch"
	daysFlag    = "days"
	commentFlag = "comment"
	statusFlag  = "status"
)

// Loader builds the use case and the configured sync defaults.
type Loader func(ctx context.Context) (tracker.UseCase, tracker.SyncInput, error)

// RootCmd configures the tracker-sync command tree.
func RootCmd(load Loader) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tracker-sync",
		Short: "Sync merged GitHub branches with Zoho Projects tasks",
		Long: `Sync merged GitHub branches with Zoho Projects tasks

Branches named after a task key (for example PRJ-T12) that were merged into the
target branch are looked up in every project of the portal, and the matching
tasks are moved to "Ready For QA".`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(syncCmd(load), statusCmd(load))

	return rootCmd
}

func syncCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Move tasks of recently merged branches to Ready For QA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, input, err := load(cmd.Context())
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed(repoFlag) {
				input.Repository, _ = flags.GetString(repoFlag)
			}
			if flags.Changed(branchFlag) {
				input.TargetBranch, _ = flags.GetString(branchFlag)
			}
			if flags.Changed(daysFlag) {
				input.LookbackDays, _ = flags.GetInt(daysFlag)
			}
			if flags.Changed(commentFlag) {
				input.Comment, _ = flags.GetString(commentFlag)
			}

			out, err := uc.SyncReadyForQA(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().String(repoFlag, "", "repository as owner/name (default from tracker.repository)")
	cmd.Flags().String(branchFlag, "", "target branch the PRs were merged into (default from tracker.target_branch)")
	cmd.Flags().Int(daysFlag, tracker.DefaultLookbackDays, "lookback window in days")
	cmd.Flags().String(commentFlag, "", "comment added to every updated task")

	return cmd
}

func statusCmd(load Loader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <task-key>",
		Short: "Move one task to a named status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, _, err := load(cmd.Context())
			if err != nil {
				return err
			}

			status, _ := cmd.Flags().GetString(statusFlag)
			comment, _ := cmd.Flags().GetString(commentFlag)

			out, err := uc.UpdateStatusByKey(cmd.Context(), tracker.UpdateStatusInput{
				TaskKey: args[0],
				Status:  status,
				Comment: comment,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}

	cmd.Flags().String(statusFlag, "", "target status name, e.g. \"Ready For QA\"")
	cmd.Flags().String(commentFlag, "", "comment added to the task")
	cmd.MarkFlagRequired(statusFlag)

	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
