package serrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"phishguard/pkg/serrors"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrUnauthorized,
		serrors.ErrBadRequest,
		serrors.ErrInternal,
		serrors.ErrTimeout,
		serrors.ErrUnavailable,
		serrors.ErrRateLimited,
	}
	seen := map[serrors.Kind]bool{}
	for _, k := range kinds {
		require.False(t, seen[k], "duplicate kind %v", k)
		seen[k] = true
	}
}

func TestError_Text(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  *serrors.Error
		want string
	}{
		{name: "message", err: serrors.With(serrors.ErrNotFound, "analysis %s not found", "a1"), want: "analysis a1 not found"},
		{name: "message and cause", err: serrors.Wrap(serrors.ErrUnavailable, cause, "whois lookup"), want: "whois lookup: connection refused"},
		{name: "kind only", err: serrors.KindOnly(serrors.ErrRateLimited), want: "RATE_LIMITED"},
		{name: "nil", err: nil, want: "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_IsAndAs(t *testing.T) {
	cause := &customError{"feed closed"}
	err := fmt.Errorf("sync: %w", serrors.Wrap(serrors.ErrUnavailable, cause, "kisa page 3"))

	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, serrors.ErrRateLimited)

	var k serrors.Kind
	require.ErrorAs(t, err, &k)
	require.Equal(t, serrors.ErrUnavailable, k)

	var ce *customError
	require.ErrorAs(t, err, &ce)
	require.Same(t, cause, ce)

	var se *serrors.Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, "kisa page 3", se.Message())
	require.Equal(t, serrors.ErrUnavailable, se.Kind())
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		code int
		want serrors.Kind
	}{
		{code: http.StatusOK, want: nil},
		{code: http.StatusFound, want: nil},
		{code: http.StatusBadRequest, want: serrors.ErrBadRequest},
		{code: http.StatusUnauthorized, want: serrors.ErrUnauthorized},
		{code: http.StatusForbidden, want: serrors.ErrUnauthorized},
		{code: http.StatusNotFound, want: serrors.ErrNotFound},
		{code: http.StatusTooManyRequests, want: serrors.ErrRateLimited},
		{code: http.StatusGatewayTimeout, want: serrors.ErrTimeout},
		{code: http.StatusBadGateway, want: serrors.ErrUnavailable},
		{code: http.StatusUnprocessableEntity, want: serrors.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			require.Equal(t, tt.want, serrors.FromStatus(tt.code))
		})
	}
}

func TestPermanent(t *testing.T) {
	require.True(t, serrors.Permanent(serrors.With(serrors.ErrUnauthorized, "service key rejected")))
	require.True(t, serrors.Permanent(fmt.Errorf("decode: %w", serrors.KindOnly(serrors.ErrBadRequest))))
	require.False(t, serrors.Permanent(serrors.KindOnly(serrors.ErrRateLimited)))
	require.False(t, serrors.Permanent(errors.New("connection reset")))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want serrors.Kind
	}{
		{name: "nil", err: nil, want: nil},
		{name: "plain", err: errors.New("boom"), want: nil},
		{name: "sentinel", err: serrors.ErrNotFound, want: serrors.ErrNotFound},
		{name: "semantic", err: serrors.With(serrors.ErrBadRequest, "bad"), want: serrors.ErrBadRequest},
		{
			name: "wrapped semantic",
			err:  fmt.Errorf("outer: %w", serrors.With(serrors.ErrRateLimited, "slow down")),
			want: serrors.ErrRateLimited,
		},
		{
			name: "outer kind wins",
			err:  serrors.Wrap(serrors.ErrUnavailable, serrors.With(serrors.ErrBadRequest, "inner"), "outer"),
			want: serrors.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, serrors.KindOf(tt.err))
		})
	}
}
