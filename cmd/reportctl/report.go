package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitcouncil/councilreports/internal/aggregator"
	"github.com/sitcouncil/councilreports/internal/document"
	"github.com/sitcouncil/councilreports/internal/report"
	"github.com/sitcouncil/councilreports/internal/storage/sqlite"
)

// buildFunc runs one report entry point against an engine.
type buildFunc func(cmd *cobra.Command, engine *report.Engine, caller report.Caller, args []string) (*report.Report, error)

func newReportCmds(opts *options) []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "minutes [meeting-id]",
			Short: "Print the minutes of a meeting",
			Args:  cobra.ExactArgs(1),
			RunE: runReport(opts, func(cmd *cobra.Command, e *report.Engine, c report.Caller, args []string) (*report.Report, error) {
				return e.BuildMeetingMinutes(cmd.Context(), args[0], c)
			}),
		},
		{
			Use:   "performance [user-id]",
			Short: "Print a member's performance report",
			Args:  cobra.ExactArgs(1),
			RunE: runReport(opts, func(cmd *cobra.Command, e *report.Engine, c report.Caller, args []string) (*report.Report, error) {
				return e.BuildMemberPerformance(cmd.Context(), args[0], c)
			}),
		},
		{
			Use:   "monthly [year] [month]",
			Short: "Print the activity report of a calendar month",
			Args:  cobra.ExactArgs(2),
			RunE: runReport(opts, func(cmd *cobra.Command, e *report.Engine, c report.Caller, args []string) (*report.Report, error) {
				year, err := strconv.Atoi(args[0])
				if err != nil {
					return nil, fmt.Errorf("invalid year %q", args[0])
				}
				month, err := strconv.Atoi(args[1])
				if err != nil {
					return nil, fmt.Errorf("invalid month %q", args[1])
				}
				return e.BuildMonthlyActivity(cmd.Context(), year, time.Month(month), c)
			}),
		},
	}
}

func runReport(opts *options, build buildFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if opts.format != "text" && opts.format != "json" {
			return fmt.Errorf("unknown --format %q", opts.format)
		}

		store, err := sqlite.New(opts.dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		engine := report.NewEngine(aggregator.New(store, store), report.WithOrganization(opts.organization))
		rep, err := build(cmd, engine, report.Caller{Name: opts.callerName}, args)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := write(&buf, rep.Model, opts.format); err != nil {
			return err
		}

		if opts.outDir == "" {
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		path := filepath.Join(opts.outDir, rep.Filename+"."+extension(opts.format))
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		slog.Info("Report written", "kind", rep.Kind, "path", path)
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	}
}

func write(w io.Writer, m *document.Model, format string) error {
	if format == "json" {
		data, err := document.MarshalJSON(m)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
	return renderText(w, m)
}

func extension(format string) string {
	if format == "json" {
		return "json"
	}
	return "txt"
}
