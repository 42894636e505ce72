// notify — контракт отправки писем со ссылками подтверждения/восстановления.
// Доставка — внешняя способность: оркестратор вызывает Sink в режиме
// fire-and-forget, ошибки доставки не превращаются в ошибки операции
// (они логируются на стороне вызывающего).
package notify

import (
	"context"
	"log/slog"

	"github.com/mvoronova/identity-service/internal/models"
	"github.com/mvoronova/identity-service/internal/pkg/redact"
)

// Sink отправляет пользователю письма со ссылками.
type Sink interface {
	// SendConfirmationLink отправляет ссылку подтверждения email.
	SendConfirmationLink(ctx context.Context, user *models.User, link string) error
	// SendPasswordResetLink отправляет ссылку восстановления пароля.
	SendPasswordResetLink(ctx context.Context, user *models.User, link string) error
}

// LogSink — реализация Sink для local/dev окружений: вместо доставки пишет
// факт отправки в лог. Сама ссылка в лог не попадает — в ней одноразовый токен.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink создаёт Sink поверх переданного логгера.
func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.Default()
	}

	return &LogSink{log: log}
}

var _ Sink = (*LogSink)(nil)

func (s *LogSink) SendConfirmationLink(_ context.Context, user *models.User, _ string) error {
	s.log.Info("confirmation_link_dispatched",
		slog.String("email", redact.Email(user.Email)),
		slog.String("token", redact.Token()),
	)
	return nil
}

func (s *LogSink) SendPasswordResetLink(_ context.Context, user *models.User, _ string) error {
	s.log.Info("password_reset_link_dispatched",
		slog.String("email", redact.Email(user.Email)),
		slog.String("token", redact.Token()),
	)
	return nil
}
