package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sbl8/vrkernels/textproc"
)

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search TEXT PATTERN",
		Short: "Find PATTERN in TEXT (character index, -1 if absent)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if all, _ := cmd.Flags().GetBool("all"); all {
				idx, err := textproc.SearchAll(args[0], args[1])
				if err != nil {
					return err
				}
				a.debugf("%d matches", len(idx))
				for _, i := range idx {
					fmt.Fprintln(out, i)
				}
				return nil
			}
			fmt.Fprintln(out, textproc.Search(args[0], args[1]))
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "Print every (overlapping) match")
	return cmd
}

func newNormalizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [TEXT]",
		Short: "Compatibility-normalize and lowercase text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textArg(cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), textproc.NormalizeText(strings.TrimRight(text, "\n")))
			return nil
		},
	}
}

func newKeywordsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords [TEXT]",
		Short: "List the most frequent words of four or more characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textArg(cmd, args)
			if err != nil {
				return err
			}
			limit := a.cfg.Text.MaxKeywords
			if cmd.Flags().Changed("max") {
				limit, _ = cmd.Flags().GetInt("max")
			}
			counts, _ := cmd.Flags().GetBool("counts")

			out := cmd.OutOrStdout()
			for _, k := range textproc.KeywordCounts(text, limit) {
				if counts {
					fmt.Fprintf(out, "%s\t%d\n", k.Word, k.Count)
				} else {
					fmt.Fprintln(out, k.Word)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntP("max", "n", 0, "Maximum keywords (default from config)")
	cmd.Flags().Bool("counts", false, "Print occurrence counts")
	return cmd
}
