// Package interceptors содержит unary interceptor'ы gRPC сервера.
package interceptors

import (
	"context"

	"github.com/Popolzen/quranverse/internal/middleware/auth"
	"github.com/Popolzen/quranverse/internal/model"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// AuthorizationKey ключ metadata с подписанным идентификатором сессии
const AuthorizationKey = "authorization"

const sessionIDKey model.ContextKey = "session_id"

// SessionID возвращает идентификатор сессии, положенный UnaryInterceptor
func SessionID(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(sessionIDKey).(string)
	return sid, ok && sid != ""
}

// WithSessionID кладёт идентификатор сессии в контекст
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// UnaryInterceptor проверяет токен сессии из metadata authorization.
// Без токена или с неверной подписью создаётся новая сессия, токен возвращается в заголовке ответа.
func UnaryInterceptor(secretKey string) grpc.UnaryServerInterceptor {
	signer := auth.NewSigner(secretKey)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		var sessionID string
		if tokens := md.Get(AuthorizationKey); len(tokens) > 0 && tokens[0] != "" {
			if sid, valid := signer.Validate(tokens[0]); valid {
				sessionID = sid
			}
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		if err := grpc.SetHeader(ctx, metadata.Pairs(AuthorizationKey, signer.Sign(sessionID))); err != nil {
			return nil, status.Error(codes.Internal, "failed to set session header")
		}

		return handler(WithSessionID(ctx, sessionID), req)
	}
}
