package main

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/HendryAvila/imc/internal/form"
	"github.com/HendryAvila/imc/internal/history"
	"github.com/HendryAvila/imc/internal/imc"
	imcserver "github.com/HendryAvila/imc/internal/server"
	"github.com/spf13/cobra"
)

// recordFlags are the record form fields as submitted on the command line.
type recordFlags struct {
	raw     form.Raw
	prefill string
}

func (f *recordFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.raw.Name, "name", "", "Name for the entry")
	fl.StringVar(&f.raw.Weight, "weight", "", "Weight in kg")
	fl.StringVar(&f.raw.Height, "height", "", "Height in m")
	fl.StringVar(&f.raw.Date, "date", "", "Date as YYYY-MM-DD")
}

// fields parses the flags into history.Fields. Values from --prefill fill
// whatever the explicit flags leave unset.
func (f *recordFlags) fields() (history.Fields, error) {
	out, err := form.Parse(f.raw)
	if err != nil {
		return history.Fields{}, err
	}
	if f.prefill == "" {
		return out, nil
	}

	q, err := url.ParseQuery(f.prefill)
	if err != nil {
		return history.Fields{}, fmt.Errorf("--prefill: %w", err)
	}
	pre := form.Prefill(q)
	if out.Weight == nil {
		out.Weight = pre.Weight
	}
	if out.Height == nil {
		out.Height = pre.Height
	}
	if out.IMC == nil {
		out.IMC = pre.IMC
	}
	return out, nil
}

// withStore opens the configured store for the duration of fn.
func (a *app) withStore(fn func(*history.Store) error) error {
	store, cleanup, err := imcserver.OpenStore(a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(store)
}

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"h"},
		Short:   "Manage saved IMC records",
	}
	cmd.AddCommand(
		newHistoryListCmd(a),
		newHistorySearchCmd(a),
		newHistoryAddCmd(a),
		newHistoryEditCmd(a),
		newHistoryDeleteCmd(a),
		newHistoryStatsCmd(a),
	)
	return cmd
}

func newHistoryListCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *history.Store) error {
				records := s.List()
				if limit > 0 && limit < len(records) {
					records = records[:limit]
				}
				printRecords(cmd.OutOrStdout(), records)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Max records to show (0 = all)")
	return cmd
}

func newHistorySearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search [TERM]",
		Short: "Filter records by name or classification",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			return a.withStore(func(s *history.Store) error {
				printRecords(cmd.OutOrStdout(), s.Search(term))
				return nil
			})
		},
	}
}

func newHistoryAddCmd(a *app) *cobra.Command {
	var rf recordFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a record",
		Example: `  imc history add --name Ana --weight 70 --height 1.75
  imc history add --name Ana --prefill "weight=70&height=1.75&imc=22.9"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := rf.fields()
			if err != nil {
				return err
			}
			return a.withStore(func(s *history.Store) error {
				rec, err := s.Create(f)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: %s, IMC %s (%s)\n",
					rec.ID, rec.Name, imc.Format(rec.IMC), rec.Category)
				return nil
			})
		},
	}
	rf.register(cmd)
	cmd.Flags().StringVar(&rf.prefill, "prefill", "", "Query string printed by imc calc (weight=..&height=..&imc=..)")
	return cmd
}

func newHistoryEditCmd(a *app) *cobra.Command {
	var rf recordFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a record (unset flags keep the current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := rf.fields()
			if err != nil {
				return err
			}
			return a.withStore(func(s *history.Store) error {
				cur, err := s.Get(args[0])
				if err != nil {
					return err
				}
				if f.Name == "" {
					f.Name = cur.Name
				}
				if f.Weight == nil {
					f.Weight = history.Float(cur.Weight)
				}
				if f.Height == nil {
					f.Height = history.Float(cur.Height)
				}

				rec, err := s.Update(cur.ID, f)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s, IMC %s (%s)\n",
					rec.ID, rec.Name, imc.Format(rec.IMC), rec.Category)
				return nil
			})
		},
	}
	rf.register(cmd)
	return cmd
}

func newHistoryDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a record (asks for confirmation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *history.Store) error {
				rec, err := s.Get(args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if !yes && !confirm(cmd.InOrStdin(), out,
					fmt.Sprintf("Delete %s (%s, %s)? [y/N] ", rec.ID, rec.Name, rec.Date)) {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}

				if err := s.Delete(rec.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %s.\n", rec.ID)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation question")
	return cmd
}

func newHistoryStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record count, average IMC and records per classification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(s *history.Store) error {
				sum := s.Summary()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Records: %d\n", sum.Count)
				fmt.Fprintf(out, "Average IMC: %s\n", imc.Format(sum.AverageIMC))
				if sum.AverageCategory != "" {
					fmt.Fprintf(out, "Average classification: %s\n", sum.AverageCategory)
				}
				fmt.Fprintln(out)

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, c := range sum.ByCategory {
					fmt.Fprintf(tw, "%s\t%d\n", c.Category, c.Count)
				}
				return tw.Flush()
			})
		},
	}
}

// confirm asks question on w and reports whether the answer read from r
// starts with y or s (sim).
func confirm(r io.Reader, w io.Writer, question string) bool {
	fmt.Fprint(w, question)
	line, _ := bufio.NewReader(r).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "s")
}

func printRecords(w io.Writer, records []history.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tPESO\tALTURA\tIMC\tCLASSIFICAÇÃO\tDATA")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%s\t%s\t%s\n",
			r.ID, r.Name, r.Weight, r.Height, imc.Format(r.IMC), r.Category, r.Date)
	}
	_ = tw.Flush()
}
