package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagSubName string
	flagSubType string
	flagKey     string
	flagValue   string

	flagStorageEnabled bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query sync profiles by key/value data",
	Long: `Select sync profiles by one key/value constraint.

The constraint can be scoped to a named sub-profile (--sub-name, with
--sub-type) or to the first sub-profile of a type (--sub-type alone).
Leaving --value empty tests for the key's existence.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := newManager().SyncProfilesByData(
			cmd.Context(), flagSubName, flagSubType, flagKey, flagValue)
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("No matching profiles")
			return nil
		}
		for _, sp := range profiles {
			fmt.Println(sp.Name())
		}
		return nil
	},
}

var byStorageCmd = &cobra.Command{
	Use:   "by-storage <storage>",
	Short: "List sync profiles that use a storage",
	Long: `List the enabled, visible sync profiles that target an online service
and carry the named storage sub-profile. With --enabled, the storage
itself must be enabled in the profile as well.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := newManager().SyncProfilesByStorage(
			cmd.Context(), args[0], flagStorageEnabled)
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("No matching profiles")
			return nil
		}
		for _, sp := range profiles {
			fmt.Println(sp.Name())
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&flagSubName, "sub-name", "", "scope the test to this named sub-profile")
	queryCmd.Flags().StringVar(&flagSubType, "sub-type", "", "scope the test to a sub-profile of this type")
	queryCmd.Flags().StringVar(&flagKey, "key", "", "key to test")
	queryCmd.Flags().StringVar(&flagValue, "value", "", "required key value (empty tests existence)")

	byStorageCmd.Flags().BoolVar(&flagStorageEnabled, "enabled", false, "require the storage to be enabled")

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(byStorageCmd)
}
