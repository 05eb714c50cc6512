package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/workvortex/vortex-api/internal/bootstrap"
)

var errSessionsUnavailable = errors.New("session service unavailable; check REDIS_* and auth configuration")

func runRevokeSessions(cmdCtx *commandContext, args []string) error {
	principalID, err := parseRevokeSessionsArgs(args)
	if err != nil {
		return err
	}

	return withServices(cmdCtx, defaultQueryTimeout, true, func(ctx context.Context, svcs *bootstrap.ServiceContainer) error {
		if svcs.Sessions == nil {
			return errSessionsUnavailable
		}
		n, err := svcs.Sessions.RevokeAll(ctx, principalID)
		if err != nil {
			return fmt.Errorf("revoke sessions: %w", err)
		}
		return writef(cmdCtx.Out, "Revoked %d session(s) for %s\n", n, principalID)
	})
}

func parseRevokeSessionsArgs(args []string) (string, error) {
	fs := flag.NewFlagSet("revoke-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	principal := fs.String("principal", "", "Account id whose sessions are revoked")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	id := strings.TrimSpace(*principal)
	if id == "" && fs.NArg() == 1 {
		id = strings.TrimSpace(fs.Arg(0))
	}
	if id == "" {
		return "", errors.New("an account id is required (--principal or positional argument)")
	}
	return id, nil
}
