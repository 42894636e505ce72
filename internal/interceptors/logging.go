package interceptors

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/mvoronova/identity-service/internal/pkg/log"
)

// UnaryLogging логирует unary-вызовы и прокладывает контекстный логгер.
//
// Формат:
//   - request_id берётся из metadata (x-request-id), иначе генерируется UUID;
//   - peer — адрес клиента (IP:port) или "-";
//   - обогащённый *slog.Logger кладётся в context (pkg/log) и доступен
//     глубже по стеку;
//   - по завершении handler пишется одна строка уровня Info: msg="grpc",
//     code=<gRPC status>, dur=<длительность>.
//
// Чувствительные данные (email, пароли, токены) в лог не попадают:
// логируются только метод, peer и request_id.
func UnaryLogging(base *slog.Logger) grpc.UnaryServerInterceptor {
	if base == nil {
		base = slog.Default()
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		var rid string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get("x-request-id"); len(v) > 0 && v[0] != "" {
				rid = v[0]
			}
		}
		if rid == "" {
			rid = uuid.NewString()
		}

		peerStr := "-"
		if p, ok := peer.FromContext(ctx); ok && p != nil && p.Addr != nil {
			peerStr = p.Addr.String()
		}

		l := base.With(
			slog.String("request_id", rid),
			slog.String("method", info.FullMethod),
			slog.String("peer", peerStr),
		)
		ctx = log.Into(ctx, l)

		resp, err := handler(ctx, req)

		l.Info("grpc",
			slog.String("code", status.Code(err).String()),
			slog.Duration("dur", time.Since(start)),
		)

		return resp, err
	}
}
