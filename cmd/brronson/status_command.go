package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brronson/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the configured directories and report readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cfg)
			if ctx.jsonOutput() {
				return writeJSON(cmd, results)
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				state := "FAIL"
				if r.Passed {
					state = "ok"
				}
				rows = append(rows, []string{r.Name, state, r.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Check", "State", "Detail"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft}))
			if !preflight.Passed(results) {
				return fmt.Errorf("one or more readiness checks failed")
			}
			return nil
		},
	}
}
