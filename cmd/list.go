package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docpress/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents and their page counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return listDocuments(cmd, buildApp(cfg).store, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listDocuments(cmd *cobra.Command, s *store.Store, out io.Writer) error {
	names, err := s.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(out, "No documents found in %s\n", s.Root)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tPAGES\tDATA\tSTYLE")
	for _, name := range names {
		doc, err := s.Open(cmd.Context(), name)
		if err != nil {
			return err
		}
		fragments, err := doc.Fragments()
		if err != nil {
			return err
		}
		dataCol := "no"
		if data, err := doc.Data(); errors.Is(err, store.ErrMalformed) {
			dataCol = "malformed"
		} else if err != nil {
			return err
		} else if len(data) > 0 {
			dataCol = "yes"
		}
		_, hasCSS, err := doc.CustomCSS()
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", name, len(fragments), dataCol, yesNo(hasCSS))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
