package v1handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"phishguard/internal/config"
	"phishguard/pkg/logger"
	"phishguard/pkg/serrors"
)

type ctxKey string

// SubjectKey is the context key under which the authenticated token subject is stored.
const SubjectKey ctxKey = "subject"

// SecHandlerOptions configures bearer token verification.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key tokens are verified with.
	PublicKey string
}

// NewSecHandlerOptions constructs a SecHandlerOptions value from the provided application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler verifies RS256 bearer tokens.
type SecHandler struct {
	parser *jwt.Parser
	keyFn  jwt.Keyfunc
}

// NewSecHandler parses the configured public key.
func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || strings.TrimSpace(opts.PublicKey) == "" {
		return nil, errors.New("jwt public key is not configured")
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not parse RSA public key")
	}

	return &SecHandler{
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
		keyFn: func(*jwt.Token) (any, error) { return key, nil },
	}, nil
}

// HandleBearerAuth verifies token and stores its subject in the returned context.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	var claims jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(token, &claims, s.keyFn); err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return ctx, serrors.With(serrors.ErrUnauthorized, "token has no subject")
	}

	return context.WithValue(ctx, SubjectKey, claims.Subject), nil
}

// Middleware rejects requests without a valid "Authorization: Bearer" header.
func (s *SecHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
			writeJSON(w, http.StatusUnauthorized, encodeError(&ErrorResponse{
				StatusCode: http.StatusUnauthorized,
				Code:       serrors.ErrUnauthorized.Error(),
				Message:    "missing bearer token",
			}))

			return
		}

		ctx, err := s.HandleBearerAuth(r.Context(), strings.TrimSpace(token))
		if err != nil {
			logger.Debug(r.Context(), "rejected bearer token", zap.Error(err))
			writeJSON(w, http.StatusUnauthorized, encodeError(&ErrorResponse{
				StatusCode: http.StatusUnauthorized,
				Code:       serrors.ErrUnauthorized.Error(),
				Message:    "invalid token",
			}))

			return
		}
		ctx = logger.WithFields(ctx, zap.String("subject", ctx.Value(SubjectKey).(string)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SubjectFrom returns the authenticated token subject stored in ctx.
func SubjectFrom(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(SubjectKey).(string)

	return s, ok
}
