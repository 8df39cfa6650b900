package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haivivi/pcbuf/pkg/cli"
	"github.com/haivivi/pcbuf/pkg/orchestrator"
)

var profileAddOpts runFlags

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"profiles"},
	Short:   "Manage run profiles",
	Long: `Manage named run profiles.

A profile is a saved run configuration (capacity, item totals, worker
counts and delays). The current profile is used by 'pcbuf run' when no
--profile is given.

Examples:
  pcbuf profile list
  pcbuf profile add wide --capacity 10 --producers 3 --consumers 2
  pcbuf profile add slow -f testdata/runs/slow.yaml
  pcbuf profile use wide
  pcbuf profile current
  pcbuf profile show wide --format json
  pcbuf profile delete wide`,
}

var profileListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all profiles",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		names := cfg.ListProfiles()
		if len(names) == 0 {
			cli.PrintInfo("No profiles configured.")
			cli.PrintInfo("Create one with: pcbuf profile add <name>")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tCAPACITY\tITEMS\tPRODUCERS\tCONSUMERS\tGROUPS")
		for _, name := range names {
			current := ""
			if name == cfg.CurrentProfile {
				current = "*"
			}
			p := cfg.Profiles[name]
			groups := p.Groups
			if groups == 0 {
				groups = 1
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
				current, name, p.Capacity, p.TotalItems, p.Producers, p.Consumers, groups)
		}
		return w.Flush()
	},
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a profile from the defaults, a run file and flags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		name := args[0]

		run, err := profileAddOpts.apply(cmd.Flags(), orchestrator.DefaultConfig())
		if err != nil {
			return err
		}
		if err := cfg.AddProfile(name, run); err != nil {
			return err
		}
		cli.PrintSuccess("Profile %q created.", name)
		cli.PrintInfo("Make it the default with: pcbuf profile use %s", name)
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a profile",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		wasCurrent := cfg.CurrentProfile == args[0]
		if err := cfg.DeleteProfile(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Profile %q deleted.", args[0])
		if wasCurrent {
			cli.PrintWarning("%q was the current profile; runs now use the built-in defaults.", args[0])
		}
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the current profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		if err := cfg.UseProfile(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to profile %q.", args[0])
		return nil
	},
}

var profileCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current profile name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		if cfg.CurrentProfile == "" {
			return fmt.Errorf("no current profile set; use 'pcbuf profile use <name>'")
		}
		fmt.Println(cfg.CurrentProfile)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a profile (default: current profile or built-in defaults)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		run, err := cfg.ResolveProfile(name)
		if err != nil {
			return err
		}
		return output(run)
	},
}

func init() {
	profileAddOpts.bind(profileAddCmd.Flags())

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileCurrentCmd)
	profileCmd.AddCommand(profileShowCmd)

	rootCmd.AddCommand(profileCmd)
}
