// migrations содержит SQL-миграции схемы БД, встраиваемые в бинарник.
// Применяются на старте сервиса через goose (см. cmd/identity-service).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
