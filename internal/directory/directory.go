// directory реализует credential directory — хранилище учётных данных,
// которое потребляет оркестратор аутентификации: создание пользователей,
// проверка паролей, подтверждение email и сброс пароля по одноразовым токенам,
// связи с внешними провайдерами.
//
// Оркестратор работает только с контрактом Directory; реализация Local
// построена поверх storage.Storage (PostgreSQL) и bcrypt.
package directory

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mvoronova/identity-service/internal/config"
	"github.com/mvoronova/identity-service/internal/models"
	"github.com/mvoronova/identity-service/internal/storage"
)

var (
	// ErrWeakPassword — пароль не удовлетворяет политике сложности.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrInvalidActionToken — одноразовый токен не найден, просрочен
	// или уже был использован. Причины намеренно не различаются.
	ErrInvalidActionToken = errors.New("invalid or expired action token")
)

// Directory — контракт credential directory, потребляемый оркестратором.
type Directory interface {
	// UserByEmail находит пользователя по нормализованному email.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по ID.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// CreateUser проверяет пароль по политике, хэширует его и сохраняет
	// пользователя. При нарушении уникальности email — storage.ErrAlreadyExists.
	CreateUser(ctx context.Context, user *models.User, password string) error
	// VerifyPassword сравнивает пароль с хэшем пользователя.
	VerifyPassword(user *models.User, password string) bool
	// ChangePassword устанавливает новый пароль без одноразового токена
	// (смена пароля уже аутентифицированным пользователем).
	ChangePassword(ctx context.Context, user *models.User, newPassword string) error
	// GenerateEmailConfirmationToken выпускает одноразовый токен подтверждения email.
	GenerateEmailConfirmationToken(ctx context.Context, user *models.User) (string, error)
	// ConfirmEmail гасит токен подтверждения и выставляет email_confirmed=true.
	ConfirmEmail(ctx context.Context, user *models.User, token string) error
	// GeneratePasswordResetToken выпускает одноразовый токен сброса пароля.
	GeneratePasswordResetToken(ctx context.Context, user *models.User) (string, error)
	// ResetPassword гасит токен сброса и устанавливает новый пароль.
	ResetPassword(ctx context.Context, user *models.User, token, newPassword string) error
	// AddExternalLogin сохраняет связь с внешним провайдером.
	AddExternalLogin(ctx context.Context, userID uuid.UUID, provider, providerKey string) error
	// ExternalLogins возвращает внешние связи пользователя.
	ExternalLogins(ctx context.Context, userID uuid.UUID) ([]models.ExternalLogin, error)
	// DeleteUser удаляет пользователя вместе с токенами и внешними связями.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// Local — реализация Directory поверх storage.Storage.
type Local struct {
	storage storage.Storage
	cfg     config.AuthConfig
}

// New создаёт credential directory поверх переданного хранилища.
func New(st storage.Storage, cfg config.AuthConfig) *Local {
	return &Local{storage: st, cfg: cfg}
}

var _ Directory = (*Local)(nil)

// UserByEmail находит пользователя по email.
func (d *Local) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return d.storage.UserByEmail(ctx, email)
}

// UserByID находит пользователя по ID.
func (d *Local) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return d.storage.UserByID(ctx, id)
}

// CreateUser проверяет пароль, хэширует его и сохраняет пользователя.
// Пустой пароль допустим только для внешних учёток (email уже подтверждён
// провайдером, локального пароля нет).
func (d *Local) CreateUser(ctx context.Context, user *models.User, password string) error {
	const op = "directory.CreateUser"

	if password != "" || !user.EmailConfirmed {
		if err := validatePassword(password); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		hash, err := hashPassword(password)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		user.PasswordHash = hash
	}

	if err := d.storage.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// VerifyPassword сравнивает пароль с хэшем пользователя.
func (d *Local) VerifyPassword(user *models.User, password string) bool {
	if user.PasswordHash == "" || password == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// ChangePassword устанавливает новый пароль без одноразового токена.
func (d *Local) ChangePassword(ctx context.Context, user *models.User, newPassword string) error {
	const op = "directory.ChangePassword"

	if err := validatePassword(newPassword); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := d.storage.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GenerateEmailConfirmationToken выпускает одноразовый токен подтверждения email.
func (d *Local) GenerateEmailConfirmationToken(ctx context.Context, user *models.User) (string, error) {
	return d.issueActionToken(ctx, user.ID, models.ActionConfirmEmail, d.cfg.ConfirmTokenTTL)
}

// ConfirmEmail гасит токен подтверждения и выставляет email_confirmed=true.
// Повторное подтверждение тем же токеном невозможно: токен одноразовый.
func (d *Local) ConfirmEmail(ctx context.Context, user *models.User, token string) error {
	const op = "directory.ConfirmEmail"

	if err := d.consumeActionToken(ctx, user.ID, models.ActionConfirmEmail, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := d.storage.ConfirmUserEmail(ctx, user.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GeneratePasswordResetToken выпускает одноразовый токен сброса пароля.
func (d *Local) GeneratePasswordResetToken(ctx context.Context, user *models.User) (string, error) {
	return d.issueActionToken(ctx, user.ID, models.ActionResetPassword, d.cfg.ResetTokenTTL)
}

// ResetPassword гасит токен сброса и устанавливает новый пароль.
// Токен гасится до смены пароля: при невалидном токене пароль не меняется,
// при ошибке записи нового хэша токен уже потрачен — повторный запрос
// восстановления выпустит новый.
func (d *Local) ResetPassword(ctx context.Context, user *models.User, token, newPassword string) error {
	const op = "directory.ResetPassword"

	if err := validatePassword(newPassword); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := d.consumeActionToken(ctx, user.ID, models.ActionResetPassword, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := d.storage.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// AddExternalLogin сохраняет связь с внешним провайдером.
func (d *Local) AddExternalLogin(ctx context.Context, userID uuid.UUID, provider, providerKey string) error {
	const op = "directory.AddExternalLogin"

	login := &models.ExternalLogin{
		Provider:    provider,
		ProviderKey: providerKey,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := d.storage.SaveExternalLogin(ctx, login); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ExternalLogins возвращает внешние связи пользователя.
func (d *Local) ExternalLogins(ctx context.Context, userID uuid.UUID) ([]models.ExternalLogin, error) {
	return d.storage.ExternalLoginsByUserID(ctx, userID)
}

// DeleteUser удаляет пользователя; токены и связи удаляются каскадно.
func (d *Local) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return d.storage.DeleteUser(ctx, id)
}

// issueActionToken генерирует одноразовый токен: клиенту уходит plain-значение,
// в БД сохраняется только SHA-256 хэш.
func (d *Local) issueActionToken(ctx context.Context, userID uuid.UUID, purpose string, ttl time.Duration) (string, error) {
	const op = "directory.issueActionToken"

	plain, hash, err := newSecret()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	token := &models.ActionToken{
		TokenHash: hash,
		UserID:    userID,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Used:      false,
	}

	if err := d.storage.SaveActionToken(ctx, token); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return plain, nil
}

// consumeActionToken гасит токен; несоответствие владельца/назначения/срока
// сводится к единой ошибке ErrInvalidActionToken.
func (d *Local) consumeActionToken(ctx context.Context, userID uuid.UUID, purpose, plain string) error {
	err := d.storage.ConsumeActionToken(ctx, userID, purpose, hashSecret(plain), time.Now().UTC())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrInvalidActionToken
		}

		return err
	}

	return nil
}

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	const op = "directory.hashPassword"

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(bytes), nil
}

// validatePassword проверяет минимальные требования к паролю.
// Политика по умолчанию: длина >= 8, хотя бы одна строчная, заглавная, цифра и спецсимвол.
func validatePassword(pw string) error {
	const op = "directory.validatePassword"

	if len(pw) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	if len([]rune(pw)) < 8 {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !(hasLower && hasUpper && hasDigit && hasSpecial) {
		return fmt.Errorf("%s: %w", op, ErrWeakPassword)
	}

	return nil
}
