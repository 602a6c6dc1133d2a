package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vytor/syncstore/internal/models"
)

var listCmd = &cobra.Command{
	Use:   "list [type]",
	Short: "List stored profile names",
	Long: `List the names of stored profiles of the given type (default sync).

Names from both roots are merged; a primary document shadows a secondary
one of the same name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ := models.TypeSync
		if len(args) == 1 {
			typ = args[0]
		}

		names, err := newManager().ProfileNames(cmd.Context(), typ)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Printf("No %s profiles found\n", typ)
			return nil
		}
		fmt.Println(joinNames(names))
		return nil
	},
}

var visibleCmd = &cobra.Command{
	Use:   "visible",
	Short: "List visible sync profiles",
	Long:  "List sync profiles that are not marked hidden, one per line with their sync type.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := newManager().AllVisibleSyncProfiles(cmd.Context())
		if err != nil {
			return err
		}
		for _, sp := range profiles {
			kind := "manual"
			if sp.SyncType() == models.SyncTypeScheduled {
				kind = "scheduled"
			}
			state := "enabled"
			if !sp.IsEnabled() {
				state = "disabled"
			}
			fmt.Printf("%s\t%s\t%s\n", sp.Name(), kind, state)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one sync profile in full",
	Long:  "Load a sync profile, resolve its sub-profiles and print the expanded tree with its schedule and latest results.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sp, err := newManager().SyncProfile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if sp == nil {
			return fmt.Errorf("sync profile not found: %s", args[0])
		}

		printProfile(sp.Profile, 0)

		if schedule := sp.Schedule(); schedule != nil {
			fmt.Printf("schedule: enabled=%t time=%s interval=%d days=%v\n",
				schedule.Enabled, schedule.Time, schedule.Interval, schedule.Days)
		}
		if next, ok := sp.NextSyncTime(); ok {
			fmt.Printf("next sync: %s\n", next.Format("2006-01-02 15:04"))
		}
		if last := sp.LastResults(); last != nil {
			printResults(*last)
		}
		return nil
	},
}

func printProfile(p *models.Profile, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Printf("%s%s (%s)\n", indent, p.Name(), p.Type())
	for _, kv := range p.Keys() {
		fmt.Printf("%s  %s = %s\n", indent, kv.Name, kv.Value)
	}
	for _, sub := range p.SubProfiles() {
		printProfile(sub, depth+1)
	}
}

func printResults(r models.SyncResults) {
	status := "invalid"
	switch r.MajorCode {
	case models.ResultSuccess:
		status = "success"
	case models.ResultFailed:
		status = "failed"
	case models.ResultAborted:
		status = "aborted"
	}
	trigger := "manual"
	if r.Scheduled {
		trigger = "scheduled"
	}
	fmt.Printf("last sync: %s %s (%s, minor=%d)\n",
		r.Time.Format("2006-01-02 15:04"), status, trigger, r.MinorCode)
	for _, target := range r.Targets {
		fmt.Printf("  %s: +%d -%d ~%d\n", target.Name, target.Added, target.Deleted, target.Modified)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(visibleCmd)
	rootCmd.AddCommand(showCmd)
}
