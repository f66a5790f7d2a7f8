package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"finitefield.org/docsite/internal/catalog"
)

func newRoutesCmd(opts *rootOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the sidebar sections and reading order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cat, err := catalog.Load(cfg.ContentDir)
			if err != nil {
				return err
			}
			return printRoutes(cmd.OutOrStdout(), cat, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when sections and reading order disagree")
	return cmd
}

func printRoutes(w io.Writer, cat *catalog.Catalog, strict bool) error {
	for _, s := range cat.Sections() {
		fmt.Fprintf(w, "%s\n", s.Label)
		for _, p := range s.Pages {
			fmt.Fprintf(w, "  %-24s %s\n", p.Path(), p.Title)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reading order")
	for i, p := range cat.Flat() {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, p.Path())
	}

	err := cat.Validate()
	if err == nil {
		fmt.Fprintln(w, "\nok")
		return nil
	}
	fmt.Fprintf(w, "\nproblems:\n%v\n", err)
	if strict {
		return err
	}
	return nil
}
