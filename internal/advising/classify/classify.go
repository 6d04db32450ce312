// Package classify derives a FailureSituation from a live Go error, so
// callers can feed real failures straight into the advisor. It recognizes
// context, net, gRPC status, Postgres and Redis errors; anything else is
// reported as unclassifiable rather than guessed.
package classify

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vietddude/advisor/internal/core/domain"
)

// FromError maps an error onto the advisor's input domain.
// The second return is false when the error carries no recognizable
// signal; the caller decides what to do with unknowns.
func FromError(err error) (domain.FailureSituation, bool) {
	if err == nil {
		return domain.FailureSituation{}, false
	}

	// Context: the caller chose to stop; always recoverable.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return situation("context", true, false), true
	}

	// Expected absence, not a failure at all.
	if errors.Is(err, redis.Nil) {
		return situation("redis", true, false), true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgSituation("postgres", pgErr.Code), true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pgSituation("postgres", string(pqErr.Code)), true
	}

	if s, ok := status.FromError(err); ok && s.Code() != codes.Unknown {
		return grpcSituation(s.Code()), true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		// Timeouts and transient network faults: retry territory.
		return situation("net", true, false), true
	}

	// Last-ditch string matching, same signals the RPC retry path keys on.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "too many requests"),
		strings.Contains(msg, "rate limit"):
		return situation("net", true, false), true
	}

	return domain.FailureSituation{}, false
}

func situation(component string, recoverable, programmerError bool) domain.FailureSituation {
	s := domain.FailureSituation{
		Recoverable:     recoverable,
		ProgrammerError: programmerError,
		Component:       component,
	}
	if recoverable {
		s.CallPath = domain.CallPathSync
	}
	return s
}

// pgSituation classifies by SQLSTATE class.
func pgSituation(component, code string) domain.FailureSituation {
	if len(code) < 2 {
		return situation(component, true, false)
	}
	switch code[:2] {
	case "42":
		// Syntax error or access rule violation: a defect in the query
		// itself. No retry will fix it.
		return situation(component, false, true)
	case "23":
		// Integrity constraint violation: the statement is wrong for the
		// current data, but the caller can proceed.
		return situation(component, true, true)
	case "08":
		// Connection exception.
		return situation(component, true, false)
	case "53", "57", "58":
		// Insufficient resources, operator intervention, system error.
		return situation(component, true, false)
	default:
		return situation(component, true, false)
	}
}

func grpcSituation(code codes.Code) domain.FailureSituation {
	switch code {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange, codes.Unimplemented:
		// The request itself is wrong: a defect at the call site.
		return situation("grpc", false, true)
	case codes.Internal, codes.DataLoss:
		return situation("grpc", false, false)
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return situation("grpc", true, false)
	case codes.NotFound, codes.AlreadyExists, codes.PermissionDenied, codes.Unauthenticated, codes.Canceled:
		return situation("grpc", true, false)
	default:
		return situation("grpc", true, false)
	}
}
