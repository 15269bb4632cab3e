package repository

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/localscoop/escoop-backend/internal/common"
)

// Cursors are opaque to clients. Internally they carry the offset of the
// next page; the criteria themselves are never embedded, so a cursor from
// one filter set simply yields wrong-looking results if replayed against
// another; callers guard against that with the criteria-equality check.

const cursorPrefix = "o:"

// EncodeCursor renders an offset as an opaque cursor token
func EncodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + strconv.Itoa(offset)))
}

// DecodeCursor parses an opaque cursor token. An empty cursor means the
// first page.
func DecodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", common.ErrInvalidCursor, err)
	}
	s := string(raw)
	if !strings.HasPrefix(s, cursorPrefix) {
		return 0, common.ErrInvalidCursor
	}
	offset, err := strconv.Atoi(strings.TrimPrefix(s, cursorPrefix))
	if err != nil || offset < 0 {
		return 0, common.ErrInvalidCursor
	}
	return offset, nil
}
