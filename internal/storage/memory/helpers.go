package memory

import (
	"strings"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// splitOrderBy разбирает имя поля сортировки: префикс "-" означает убывание.
func splitOrderBy(orderBy string) (field string, desc bool) {
	orderBy = strings.TrimSpace(orderBy)
	if strings.HasPrefix(orderBy, "-") {
		return strings.TrimPrefix(orderBy, "-"), true
	}
	return orderBy, false
}

// containsFold — проверка подстроки без учёта регистра.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// applyWindow применяет offset/limit к уже отсортированной выборке.
func applyWindow[T any](items []T, page domain.Page) []T {
	if page.Offset > 0 {
		if page.Offset >= len(items) {
			return []T{}
		}
		items = items[page.Offset:]
	}
	if page.Limit > 0 && len(items) > page.Limit {
		items = items[:page.Limit]
	}
	return items
}
