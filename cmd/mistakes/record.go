package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smais007/mistake-pattern-analyzer/internal/analyzer"
	"github.com/smais007/mistake-pattern-analyzer/internal/category"
	"github.com/smais007/mistake-pattern-analyzer/internal/mistake"
	"github.com/smais007/mistake-pattern-analyzer/internal/service"
	"github.com/smais007/mistake-pattern-analyzer/internal/store"
	"github.com/smais007/mistake-pattern-analyzer/internal/ui"
)

func loadService() (*service.Service, *store.Store, error) {
	s, err := loadStore()
	if err != nil {
		return nil, nil, err
	}
	svc, issues, err := service.New(s)
	if err != nil {
		return nil, nil, err
	}
	for _, li := range issues {
		ui.Logger.Warn("skipping corrupted data line", "line", li.Line, "reason", li.Reason)
	}
	return svc, s, nil
}

func addCmd() *cobra.Command {
	var severityFlag string
	var dateFlag string
	var resolution string
	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Log a new mistake",
		Long:  "Log a mistake. The category is detected automatically from keywords in the description and the matching prevention suggestion is shown.",
		Example: `  mistakes add "Shipped late because I postponed the review" --severity high
  mistakes add "Forgot to update the changelog" -s low --date 2024-06-01 -r "Added a release checklist"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return err
			}

			severity, err := mistake.ParseSeverity(severityFlag)
			if err != nil {
				return err
			}

			m, err := svc.Add(args[0], severity, dateFlag, resolution)
			if err != nil {
				return err
			}

			ui.Success("Mistake logged")
			ui.KeyValue("ID:        ", m.ID)
			ui.KeyValue("Category:  ", ui.CategoryLabel(m.Category))
			ui.KeyValue("Severity:  ", ui.SeverityLabel(m.Severity))
			ui.KeyValue("Date:      ", m.FormattedDate())
			ui.KeyValue("Suggestion:", analyzer.Suggestion(m.Category))
			return nil
		},
	}
	cmd.Flags().StringVarP(&severityFlag, "severity", "s", "", "Severity: low, medium, or high (required)")
	cmd.Flags().StringVar(&dateFlag, "date", time.Now().Format(mistake.DateFormat), "Date the mistake happened (yyyy-mm-dd)")
	cmd.Flags().StringVarP(&resolution, "resolution", "r", "", "Resolution or lesson learned")
	_ = cmd.MarkFlagRequired("severity")
	return cmd
}

func listCmd() *cobra.Command {
	var categoryFilter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logged mistakes",
		Example: `  mistakes list
  mistakes list --category TECHNICAL`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return err
			}

			records := svc.All()
			if categoryFilter != "" {
				want, err := category.Parse(strings.ToUpper(categoryFilter))
				if err != nil {
					return err
				}
				var filtered []mistake.Mistake
				for _, m := range records {
					if m.Category == want {
						filtered = append(filtered, m)
					}
				}
				records = filtered
			}

			if len(records) == 0 {
				ui.EmptyState("No mistakes recorded. Use 'mistakes add' to log one.")
				return nil
			}

			var rows [][]string
			for _, m := range records {
				rows = append(rows, []string{
					m.ID,
					m.FormattedDate(),
					m.Category.Display(),
					string(m.Severity),
					truncate(m.Description, 60),
				})
			}
			ui.Table([]string{"ID", "DATE", "CATEGORY", "SEVERITY", "DESCRIPTION"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&categoryFilter, "category", "c", "", "Only show mistakes in this category")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one mistake with its prevention suggestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			m, err := svc.Get(args[0])
			if err != nil {
				return err
			}

			ui.KeyValue("ID:         ", m.ID)
			ui.KeyValue("Date:       ", m.FormattedDate())
			ui.KeyValue("Category:   ", ui.CategoryLabel(m.Category))
			ui.KeyValue("Severity:   ", m.Severity.Display())
			ui.KeyValue("Description:", m.Description)
			if m.Resolution != "" {
				ui.KeyValue("Resolution: ", m.Resolution)
			}
			ui.KeyValue("Suggestion: ", analyzer.Suggestion(m.Category))
			return nil
		},
	}
}

func editCmd() *cobra.Command {
	var description string
	var severityFlag string
	var dateFlag string
	var resolution string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing mistake",
		Long:  "Edit fields of a logged mistake. Changing the description re-runs category detection.",
		Example: `  mistakes edit MST-4F2A9C01 --severity high
  mistakes edit MST-4F2A9C01 -d "Actually it was a misread requirement"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return err
			}

			before, err := svc.Get(args[0])
			if err != nil {
				return err
			}

			var fields service.UpdateFields
			if cmd.Flags().Changed("description") {
				fields.Description = &description
			}
			if cmd.Flags().Changed("severity") {
				sev, err := mistake.ParseSeverity(severityFlag)
				if err != nil {
					return err
				}
				fields.Severity = &sev
			}
			if cmd.Flags().Changed("date") {
				fields.Date = &dateFlag
			}
			if cmd.Flags().Changed("resolution") {
				fields.Resolution = &resolution
			}

			m, err := svc.Update(args[0], fields)
			if err != nil {
				return err
			}

			ui.Success(fmt.Sprintf("Updated %s", m.ID))
			if m.Category != before.Category {
				ui.Info(fmt.Sprintf("Category re-detected: %s → %s", before.Category.Display(), m.Category.Display()))
				ui.KeyValue("Suggestion:", analyzer.Suggestion(m.Category))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description (re-detects category)")
	cmd.Flags().StringVarP(&severityFlag, "severity", "s", "", "New severity: low, medium, or high")
	cmd.Flags().StringVar(&dateFlag, "date", "", "New date (yyyy-mm-dd)")
	cmd.Flags().StringVarP(&resolution, "resolution", "r", "", "New resolution (empty clears it)")
	return cmd
}

func deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a mistake",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return err
			}

			m, err := svc.Get(args[0])
			if err != nil {
				return err
			}

			if !yes {
				proceed, err := ui.Confirm(fmt.Sprintf("Delete %s (%s)?", m.ID, truncate(m.Description, 40)))
				if err != nil {
					return err
				}
				if !proceed {
					ui.Info("Cancelled.")
					return nil
				}
			}

			if err := svc.Delete(m.ID); err != nil {
				return err
			}
			ui.Success(fmt.Sprintf("Deleted %s", m.ID))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// exportRecord is the YAML shape of one exported mistake.
type exportRecord struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Severity    string `yaml:"severity"`
	Date        string `yaml:"date"`
	Resolution  string `yaml:"resolution,omitempty"`
}

func exportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all mistakes as YAML",
		Example: `  mistakes export
  mistakes export --out mistakes.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return err
			}

			records := make([]exportRecord, 0, svc.Count())
			for _, m := range svc.All() {
				records = append(records, exportRecord{
					ID:          m.ID,
					Description: m.Description,
					Category:    string(m.Category),
					Severity:    string(m.Severity),
					Date:        m.FormattedDate(),
					Resolution:  m.Resolution,
				})
			}

			data, err := yaml.Marshal(records)
			if err != nil {
				return fmt.Errorf("failed to marshal export: %w", err)
			}

			if outPath == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			ui.Success(fmt.Sprintf("Exported %d mistakes to %s", len(records), outPath))
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "Write to a file instead of stdout")
	return cmd
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
