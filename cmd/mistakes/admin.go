package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/smais007/mistake-pattern-analyzer/internal/browse"
	"github.com/smais007/mistake-pattern-analyzer/internal/store"
	"github.com/smais007/mistake-pattern-analyzer/internal/ui"
)

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the mistakes home directory",
		Long:  "Create the mistakes home directory (default ~/.mistakes, override with MISTAKES_HOME) with a default config.",
		RunE: func(cmd *cobra.Command, args []string) error {
			home := store.Home()
			if err := store.Init(home, force); err != nil {
				return err
			}
			ui.CommandBanner("init", "personal mistake logger")
			ui.Success(fmt.Sprintf("Initialized %s", home))
			ui.Info("Log your first mistake with 'mistakes add'.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Reinitialize even if the directory exists")
	return cmd
}

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse mistakes interactively",
		Long:  "Open a terminal UI to browse, add, and delete mistakes and view the pattern analysis. The view reloads automatically when the data file changes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, st, err := loadService()
			if err != nil {
				return err
			}

			p := tea.NewProgram(browse.New(svc, st), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

func doctorCmd() *cobra.Command {
	var fix bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the health of the mistakes home directory",
		Example: `  mistakes doctor
  mistakes doctor --fix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			home := store.Home()
			ui.SectionHeader("Health Check")
			ui.Detail("home:", home)

			issues := store.CheckHealth(home)
			if len(issues) == 0 {
				ui.Success("Everything looks healthy")
				return nil
			}

			for _, issue := range issues {
				switch issue.Severity {
				case "error":
					ui.Error(issue.Message)
				default:
					ui.Warning(issue.Message)
				}
			}

			if !fix {
				ui.Info("Run 'mistakes doctor --fix' to repair what can be repaired.")
				return nil
			}

			fixed := store.FixIssues(home)
			for _, msg := range fixed {
				ui.Success(msg)
			}
			if len(fixed) == 0 {
				ui.Info("Nothing could be fixed automatically.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "Attempt to repair detected issues")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change configuration",
	}
	cmd.AddCommand(configListCmd(), configGetCmd(), configSetCmd())
	return cmd
}

func configListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			ui.KeyValue("version:               ", s.Config.Version)
			ui.KeyValue("storage.data_file:     ", s.Config.Storage.DataFile)
			ui.KeyValue("storage.backup_on_save:", fmt.Sprintf("%t", s.Config.Storage.BackupOnSave))
			return nil
		},
	}
}

func configGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			switch args[0] {
			case "version":
				fmt.Println(s.Config.Version)
			case "storage.data_file":
				fmt.Println(s.Config.Storage.DataFile)
			case "storage.backup_on_save":
				fmt.Println(s.Config.Storage.BackupOnSave)
			default:
				return fmt.Errorf("unknown config key: %s", args[0])
			}
			return nil
		},
	}
}

func configSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a configuration value",
		Example: `  mistakes config set storage.backup_on_save false
  mistakes config set storage.data_file log.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadStore()
			if err != nil {
				return err
			}
			if err := s.SetConfigValue(args[0], args[1]); err != nil {
				return err
			}
			ui.Success(fmt.Sprintf("Set %s = %s", args[0], args[1]))
			return nil
		},
	}
}
