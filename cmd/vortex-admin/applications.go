package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/workvortex/vortex-api/internal/bootstrap"
	"github.com/workvortex/vortex-api/internal/domain/model"
)

type listApplicationsOptions struct {
	EmployerID  string
	CandidateID string
	Status      string
	RawJSON     bool
	Timeout     time.Duration
}

func runListApplications(cmdCtx *commandContext, args []string) error {
	opts, err := parseListApplicationsFlags(args)
	if err != nil {
		return err
	}

	return withServices(cmdCtx, opts.Timeout, false, func(ctx context.Context, svcs *bootstrap.ServiceContainer) error {
		if opts.EmployerID != "" {
			apps, err := svcs.Applications.ListForEmployer(ctx, opts.EmployerID)
			if err != nil {
				return fmt.Errorf("list employer applications: %w", err)
			}
			apps = filterEmployerViews(apps, model.ApplicationStatus(opts.Status))
			if opts.RawJSON {
				return writeJSON(cmdCtx.Out, apps)
			}
			return printEmployerApplications(cmdCtx.Out, opts.EmployerID, apps)
		}

		apps, err := svcs.Applications.ListForCandidate(ctx, opts.CandidateID)
		if err != nil {
			return fmt.Errorf("list candidate applications: %w", err)
		}
		apps = filterCandidateViews(apps, model.ApplicationStatus(opts.Status))
		if opts.RawJSON {
			return writeJSON(cmdCtx.Out, apps)
		}
		return printCandidateApplications(cmdCtx.Out, opts.CandidateID, apps)
	})
}

func parseListApplicationsFlags(args []string) (listApplicationsOptions, error) {
	fs := flag.NewFlagSet("list-applications", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := listApplicationsOptions{}
	fs.StringVar(&opts.EmployerID, "employer", "", "List applications received by this employer account")
	fs.StringVar(&opts.CandidateID, "candidate", "", "List applications submitted by this candidate account")
	fs.StringVar(&opts.Status, "status", "", "Only show applications in this status")
	fs.BoolVar(&opts.RawJSON, "json", false, "Print the result as JSON")
	fs.DurationVar(&opts.Timeout, "timeout", defaultQueryTimeout, "Maximum duration for the query")

	if err := fs.Parse(args); err != nil {
		return listApplicationsOptions{}, err
	}

	opts.EmployerID = strings.TrimSpace(opts.EmployerID)
	opts.CandidateID = strings.TrimSpace(opts.CandidateID)
	opts.Status = strings.ToLower(strings.TrimSpace(opts.Status))

	switch {
	case opts.EmployerID == "" && opts.CandidateID == "":
		return listApplicationsOptions{}, errors.New("one of --employer or --candidate is required")
	case opts.EmployerID != "" && opts.CandidateID != "":
		return listApplicationsOptions{}, errors.New("--employer and --candidate are mutually exclusive")
	}
	if opts.Status != "" && !model.ApplicationStatus(opts.Status).Valid() {
		return listApplicationsOptions{}, fmt.Errorf("unknown --status %q", opts.Status)
	}
	if opts.Timeout <= 0 {
		return listApplicationsOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func filterEmployerViews(apps []*model.EmployerApplicationView, status model.ApplicationStatus) []*model.EmployerApplicationView {
	if status == "" {
		return apps
	}
	out := apps[:0:0]
	for _, a := range apps {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

func filterCandidateViews(apps []*model.CandidateApplicationView, status model.ApplicationStatus) []*model.CandidateApplicationView {
	if status == "" {
		return apps
	}
	out := apps[:0:0]
	for _, a := range apps {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

func printEmployerApplications(w io.Writer, employerID string, apps []*model.EmployerApplicationView) error {
	if err := writef(w, "Applications for employer %s (%d)\n", employerID, len(apps)); err != nil {
		return fmt.Errorf("print header: %w", err)
	}
	if len(apps) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tJOB\tCANDIDATE\tPHONE\tSTATUS\tAPPLIED"); err != nil {
		return err
	}
	for _, a := range apps {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.JobTitle, a.CandidateName, deref(a.CandidatePhone), a.Status, a.AppliedAt.Format(time.DateOnly),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printCandidateApplications(w io.Writer, candidateID string, apps []*model.CandidateApplicationView) error {
	if err := writef(w, "Applications by candidate %s (%d)\n", candidateID, len(apps)); err != nil {
		return fmt.Errorf("print header: %w", err)
	}
	if len(apps) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tJOB\tEMPLOYER\tLOCATION\tSTATUS\tAPPLIED"); err != nil {
		return err
	}
	for _, a := range apps {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.JobTitle, a.EmployerName, a.JobLocation, a.Status, a.AppliedAt.Format(time.DateOnly),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
