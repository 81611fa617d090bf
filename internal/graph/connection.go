package graph

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// defaultPageSize применяется, когда first не задан.
	defaultPageSize = 50
	// maxPageSize ограничивает размер страницы сверху.
	maxPageSize = 500

	cursorPrefix = "cursor:"
)

// encodeCursor кодирует позицию элемента в выборке в непрозрачный курсор.
func encodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

// decodeCursor восстанавливает позицию из курсора.
func decodeCursor(cursor string) (int, error) {
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor: %w", err)
	}
	value, ok := strings.CutPrefix(string(raw), cursorPrefix)
	if !ok {
		return 0, fmt.Errorf("invalid cursor")
	}
	offset, err := strconv.Atoi(value)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid cursor")
	}
	return offset, nil
}

// pageWindow переводит first/after в offset/limit для хранилища.
// after указывает на последний отданный элемент, выборка начинается за ним.
func pageWindow(first *int32, after *string) (offset, limit int, err error) {
	limit = defaultPageSize
	if first != nil {
		if *first < 0 {
			return 0, 0, fmt.Errorf("first must be non-negative")
		}
		limit = int(*first)
		if limit > maxPageSize {
			limit = maxPageSize
		}
	}

	if after != nil && *after != "" {
		position, err := decodeCursor(*after)
		if err != nil {
			return 0, 0, err
		}
		offset = position + 1
	}

	return offset, limit, nil
}

// PageInfoResolver отдаёт relay-метаданные страницы.
type PageInfoResolver struct {
	hasNext     bool
	hasPrevious bool
	startCursor *string
	endCursor   *string
}

func newPageInfo(offset, count, total int) *PageInfoResolver {
	info := &PageInfoResolver{
		hasNext:     offset+count < total,
		hasPrevious: offset > 0,
	}
	if count > 0 {
		start := encodeCursor(offset)
		end := encodeCursor(offset + count - 1)
		info.startCursor = &start
		info.endCursor = &end
	}
	return info
}

func (r *PageInfoResolver) HasNextPage() bool {
	return r.hasNext
}

func (r *PageInfoResolver) HasPreviousPage() bool {
	return r.hasPrevious
}

func (r *PageInfoResolver) StartCursor() *string {
	return r.startCursor
}

func (r *PageInfoResolver) EndCursor() *string {
	return r.endCursor
}
