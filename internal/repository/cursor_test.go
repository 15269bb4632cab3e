package repository

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/localscoop/escoop-backend/internal/common"
)

func TestCursorRoundTrip(t *testing.T) {
	for _, offset := range []int{0, 1, 20, 999} {
		cursor := EncodeCursor(offset)
		decoded, err := DecodeCursor(cursor)
		assert.NoError(t, err)
		assert.Equal(t, offset, decoded)
	}
}

func TestDecodeCursorEmptyMeansFirstPage(t *testing.T) {
	offset, err := DecodeCursor("")
	assert.NoError(t, err)
	assert.Equal(t, 0, offset)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	cases := []string{
		"not-base64!!!",
		base64.RawURLEncoding.EncodeToString([]byte("nonsense")),
		base64.RawURLEncoding.EncodeToString([]byte("o:abc")),
		base64.RawURLEncoding.EncodeToString([]byte("o:-5")),
	}
	for _, c := range cases {
		_, err := DecodeCursor(c)
		assert.ErrorIs(t, err, common.ErrInvalidCursor, "cursor %q", c)
	}
}

func TestCursorIsOpaque(t *testing.T) {
	cursor := EncodeCursor(40)
	assert.NotContains(t, cursor, "40")
}
