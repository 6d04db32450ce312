package classify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestFromError_Context(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	s, ok := FromError(ctx.Err())
	if !ok {
		t.Fatal("expected classification")
	}
	if !s.Recoverable || s.ProgrammerError {
		t.Errorf("context errors should be recoverable execution errors, got %+v", s)
	}
}

func TestFromError_GRPCStatus(t *testing.T) {
	cases := []struct {
		code            codes.Code
		recoverable     bool
		programmerError bool
	}{
		{codes.Unavailable, true, false},
		{codes.DeadlineExceeded, true, false},
		{codes.ResourceExhausted, true, false},
		{codes.InvalidArgument, false, true},
		{codes.FailedPrecondition, false, true},
		{codes.Internal, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.code.String(), func(t *testing.T) {
			s, ok := FromError(status.Error(tc.code, "boom"))
			if !ok {
				t.Fatal("expected classification")
			}
			if s.Recoverable != tc.recoverable || s.ProgrammerError != tc.programmerError {
				t.Errorf("code %s: got %+v", tc.code, s)
			}
		})
	}
}

func TestFromError_Postgres(t *testing.T) {
	cases := []struct {
		name            string
		err             error
		recoverable     bool
		programmerError bool
	}{
		{"pgx syntax", &pgconn.PgError{Code: "42601"}, false, true},
		{"pgx connection", &pgconn.PgError{Code: "08006"}, true, false},
		{"pgx constraint", &pgconn.PgError{Code: "23505"}, true, true},
		{"pq syntax", &pq.Error{Code: "42703"}, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, ok := FromError(tc.err)
			if !ok {
				t.Fatal("expected classification")
			}
			if s.Recoverable != tc.recoverable || s.ProgrammerError != tc.programmerError {
				t.Errorf("got %+v", s)
			}
			if s.Component != "postgres" {
				t.Errorf("expected component postgres, got %s", s.Component)
			}
		})
	}
}

func TestFromError_NetAndRedis(t *testing.T) {
	s, ok := FromError(timeoutErr{})
	if !ok || !s.Recoverable {
		t.Errorf("net timeout should classify recoverable, got %+v ok=%v", s, ok)
	}

	s, ok = FromError(redis.Nil)
	if !ok || !s.Recoverable || s.ProgrammerError {
		t.Errorf("redis.Nil should classify as recoverable execution error, got %+v ok=%v", s, ok)
	}

	s, ok = FromError(fmt.Errorf("dial tcp: connection refused"))
	if !ok || !s.Recoverable {
		t.Errorf("connection refused should classify recoverable, got %+v ok=%v", s, ok)
	}
}

func TestFromError_Unknown(t *testing.T) {
	if _, ok := FromError(errors.New("something bespoke went wrong")); ok {
		t.Error("unknown errors must not be guessed at")
	}
	if _, ok := FromError(nil); ok {
		t.Error("nil error must not classify")
	}
}

func TestFromError_FeedsAdvisor(t *testing.T) {
	// A classified situation must always lie inside the advisor's domain.
	errsToCheck := []error{
		status.Error(codes.Unavailable, "down"),
		&pgconn.PgError{Code: "42601"},
		timeoutErr{},
		redis.Nil,
	}
	for _, err := range errsToCheck {
		s, ok := FromError(err)
		if !ok {
			t.Fatalf("expected classification for %v", err)
		}
		if vErr := s.Validate(); vErr != nil {
			t.Errorf("classified situation for %v fails validation: %v", err, vErr)
		}
	}
}
