package main

import (
	"fmt"
	"strconv"

	"github.com/mwtan/jelconsole/internal/history"
	"github.com/spf13/cobra"
)

var (
	historyLimit  int
	historySearch string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List lines entered in previous sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withHistory(func(h *history.HistoryManager) error {
			entries, err := h.SearchHistory(historySearch, historyLimit)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}
			out := cmd.OutOrStdout()
			// Oldest first, like a shell's history listing.
			for i := len(entries) - 1; i >= 0; i-- {
				e := entries[i]
				fmt.Fprintf(out, "%5d  %-7s %s\n", e.ID, outcomeLabel(e.Outcome), e.Line)
			}
			return nil
		})
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one history entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid history id %q", args[0])
		}
		return withHistory(func(h *history.HistoryManager) error {
			return h.DeleteEntry(uint(id))
		})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withHistory(func(h *history.HistoryManager) error {
			if err := h.ResetHistory(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			return nil
		})
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries to list")
	historyCmd.Flags().StringVarP(&historySearch, "search", "s", "", "only list lines containing this text")

	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func withHistory(fn func(h *history.HistoryManager) error) error {
	h, err := history.NewHistoryManager(resolveHistoryPath())
	if err != nil {
		return err
	}
	defer h.Close()
	return fn(h)
}

func outcomeLabel(o history.Outcome) string {
	if o == history.OutcomePending {
		return "-"
	}
	return string(o)
}
