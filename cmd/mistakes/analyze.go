package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smais007/mistake-pattern-analyzer/internal/analyzer"
	"github.com/smais007/mistake-pattern-analyzer/internal/category"
	"github.com/smais007/mistake-pattern-analyzer/internal/ui"
)

func analyzeCmd() *cobra.Command {
	var markdown bool
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze recorded mistakes for recurring patterns",
		Long:  "Count mistakes per category, flag categories that recur often enough to be patterns, and show the prevention suggestion for the most frequent one.",
		Example: `  mistakes analyze
  mistakes analyze --markdown`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService()
			if err != nil {
				return err
			}

			categories := svc.Categories()
			report := analyzer.Report(categories)

			if markdown {
				fmt.Print(ui.RenderMarkdown(markdownReport(categories, report)))
				return nil
			}

			ui.SectionHeader("Pattern Analysis")

			if len(categories) == 0 {
				fmt.Println(report)
				return nil
			}

			freq := analyzer.Frequencies(categories)
			var rows [][]string
			for _, c := range category.All() {
				n := freq[c]
				if n == 0 {
					continue
				}
				status := ""
				switch {
				case analyzer.IsCriticalPattern(n):
					status = ui.Red("CRITICAL")
				case analyzer.IsPattern(n):
					status = ui.Yellow("pattern")
				}
				rows = append(rows, []string{c.Display(), fmt.Sprintf("%d", n), status})
			}
			ui.Table([]string{"CATEGORY", "COUNT", "STATUS"}, rows)

			if top, ok := analyzer.MostFrequent(categories); ok {
				fmt.Println()
				ui.KeyValue("Most frequent:", ui.CategoryLabel(top))
				ui.KeyValue("Suggestion:   ", analyzer.Suggestion(top))
			}

			fmt.Println()
			fmt.Println(report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render the analysis as markdown")
	return cmd
}

// markdownReport reshapes the analysis into a markdown document for glamour.
func markdownReport(categories []category.Category, report string) string {
	var b strings.Builder
	b.WriteString("# Pattern Analysis\n\n")

	if len(categories) == 0 {
		b.WriteString(report + "\n")
		return b.String()
	}

	freq := analyzer.Frequencies(categories)
	b.WriteString("| Category | Count | Status |\n|---|---|---|\n")
	for _, c := range category.All() {
		n := freq[c]
		if n == 0 {
			continue
		}
		status := "-"
		switch {
		case analyzer.IsCriticalPattern(n):
			status = "**critical**"
		case analyzer.IsPattern(n):
			status = "pattern"
		}
		fmt.Fprintf(&b, "| %s | %d | %s |\n", c.Display(), n, status)
	}

	if top, ok := analyzer.MostFrequent(categories); ok {
		fmt.Fprintf(&b, "\nMost frequent: **%s**\n\n> %s\n", top.Display(), analyzer.Suggestion(top))
	}

	b.WriteString("\n```\n" + report + "\n```\n")
	return b.String()
}

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [category]",
		Short: "Show prevention suggestions",
		Long:  "With no argument, shows the suggestion for your most frequent mistake category. With a category name, shows that category's suggestion.",
		Example: `  mistakes suggest
  mistakes suggest TECHNICAL`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				c, err := category.Parse(strings.ToUpper(args[0]))
				if err != nil {
					return err
				}
				ui.KeyValue("Category:  ", c.Display())
				ui.KeyValue("Suggestion:", analyzer.Suggestion(c))
				return nil
			}

			svc, _, err := loadService()
			if err != nil {
				return err
			}
			top, ok := svc.MostFrequent()
			if !ok {
				ui.EmptyState("No mistakes recorded yet. Add some to see patterns!")
				return nil
			}
			ui.KeyValue("Most frequent:", ui.CategoryLabel(top))
			ui.KeyValue("Suggestion:   ", analyzer.Suggestion(top))
			return nil
		},
	}
}
