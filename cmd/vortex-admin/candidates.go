package main

import (
	"context"
	"encoding/json"
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

type findCandidateOptions struct {
	Phone   string
	RawJSON bool
	Timeout time.Duration
}

func runFindCandidate(cmdCtx *commandContext, args []string) error {
	opts, err := parseFindCandidateFlags(args)
	if err != nil {
		return err
	}

	return withServices(cmdCtx, opts.Timeout, false, func(ctx context.Context, svcs *bootstrap.ServiceContainer) error {
		p, err := svcs.Search.SearchByPhone(ctx, opts.Phone)
		if err != nil {
			return fmt.Errorf("search candidate: %w", err)
		}
		if opts.RawJSON {
			return writeJSON(cmdCtx.Out, p)
		}
		return printCandidate(cmdCtx.Out, opts.Phone, p)
	})
}

func parseFindCandidateFlags(args []string) (findCandidateOptions, error) {
	fs := flag.NewFlagSet("find-candidate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := findCandidateOptions{}
	fs.StringVar(&opts.Phone, "phone", "", "Phone number to search for (formatting is ignored)")
	fs.BoolVar(&opts.RawJSON, "json", false, "Print the result as JSON")
	fs.DurationVar(&opts.Timeout, "timeout", defaultQueryTimeout, "Maximum duration for the lookup")

	if err := fs.Parse(args); err != nil {
		return findCandidateOptions{}, err
	}
	if opts.Phone == "" && fs.NArg() > 0 {
		opts.Phone = strings.Join(fs.Args(), " ")
	}
	if strings.TrimSpace(opts.Phone) == "" {
		return findCandidateOptions{}, errors.New("a phone number is required (--phone or positional argument)")
	}
	if opts.Timeout <= 0 {
		return findCandidateOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func printCandidate(w io.Writer, phone string, p *model.CandidatePrincipal) error {
	if p == nil {
		return writef(w, "No candidate found for %q\n", phone)
	}
	if err := writef(w, "Candidate %s\n  Name:  %s\n  Email: %s\n  Phone: %s\n", p.ID, p.Name, p.Email, deref(p.Phone)); err != nil {
		return fmt.Errorf("print candidate: %w", err)
	}
	if len(p.Experiences) == 0 {
		return writeln(w, "\nNo work history recorded.")
	}

	if err := writef(w, "\nWork history (%d)\n", len(p.Experiences)); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ROLE\tCOMPANY\tFROM\tTO"); err != nil {
		return err
	}
	for _, e := range p.Experiences {
		to := "present"
		if !e.Current && e.EndDate != nil {
			to = e.EndDate.Format(time.DateOnly)
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\n", e.Role, e.Company, e.StartDate.Format(time.DateOnly), to); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
