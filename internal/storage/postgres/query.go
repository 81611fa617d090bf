package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// condBuilder накапливает условия WHERE с позиционными аргументами.
// Выражение должно содержать ровно один плейсхолдер $%d.
type condBuilder struct {
	conds []string
	args  []interface{}
}

func (b *condBuilder) add(expr string, value interface{}) {
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf(expr, len(b.args)))
}

func (b *condBuilder) addRaw(expr string) {
	b.conds = append(b.conds, expr)
}

func (b *condBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// orderClause транслирует Page.OrderBy в ORDER BY по whitelist-карте колонок.
// Неизвестные поля игнорируются в пользу порядка по умолчанию, чтобы
// произвольный ввод не попадал в SQL.
func orderClause(page domain.Page, columns map[string]string, fallback string) string {
	field := page.OrderBy
	desc := false
	if strings.HasPrefix(field, "-") {
		desc = true
		field = field[1:]
	}

	column, ok := columns[field]
	if !ok {
		return " ORDER BY " + fallback
	}
	if desc {
		return fmt.Sprintf(" ORDER BY %s DESC, id DESC", column)
	}
	return fmt.Sprintf(" ORDER BY %s ASC, id ASC", column)
}

// windowClause добавляет LIMIT/OFFSET в конец списка аргументов.
func windowClause(page domain.Page, args []interface{}) (string, []interface{}) {
	clause := ""
	if page.Limit > 0 {
		args = append(args, page.Limit)
		clause += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if page.Offset > 0 {
		args = append(args, page.Offset)
		clause += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return clause, args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
