package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vytor/syncstore/internal/models"
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Add a profile from a document file",
	Long:  "Parse a profile document and store it under the primary root. Prints the profile name on success.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		name, err := newManager().AddProfile(cmd.Context(), doc)
		if err != nil {
			return err
		}
		fmt.Println(name)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <file>",
	Short: "Update a stored profile from a document file",
	Long:  "Like add, but refuses to replace a stored profile marked protected.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		name, err := newManager().UpdateProfile(cmd.Context(), doc)
		if err != nil {
			return err
		}
		fmt.Println(name)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <name> [type]",
	Short: "Remove a stored profile",
	Long:  "Remove a profile document (default type sync) and, for sync profiles, its log. Protected profiles are refused.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ := models.TypeSync
		if len(args) == 2 {
			typ = args[1]
		}
		return newManager().Remove(cmd.Context(), args[0], typ)
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a sync profile",
	Long:  "Rename a sync profile document together with its log. Fails without leaving the two documents under different names.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newManager().Rename(cmd.Context(), args[0], args[1])
	},
}

var logCmd = &cobra.Command{
	Use:   "log <name>",
	Short: "Show the sync history of a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, err := newManager().SyncProfile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if sp == nil {
			return fmt.Errorf("sync profile not found: %s", args[0])
		}

		results := sp.Log().Results()
		if len(results) == 0 {
			fmt.Printf("No sync history for %s\n", args[0])
			return nil
		}
		for _, r := range results {
			printResults(r)
		}
		return nil
	},
}

var setScheduleCmd = &cobra.Command{
	Use:   "set-schedule <name> <file>",
	Short: "Attach a schedule to a sync profile",
	Long:  "Parse a schedule document, mark the profile as scheduled and save it.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[1], err)
		}
		return newManager().SetSyncSchedule(cmd.Context(), args[0], doc)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(setScheduleCmd)
}
