package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	// Replace global logger with a no-op to avoid nil pointer panics in tests.
	zap.ReplaceGlobals(zap.NewNop())
}

func TestColumnIndex_RequiredColumns(t *testing.T) {
	idx, err := columnIndex([]string{"User_ID", " date ", "brand", "goods_name", "option"})
	require.NoError(t, err)
	assert.Equal(t, 0, idx["user_id"])
	assert.Equal(t, 1, idx["date"])

	_, err = columnIndex([]string{"user_id", "brand", "goods_name"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date")
}

func TestParseDate_Layouts(t *testing.T) {
	for _, s := range []string{"2024-03-05", "2024-03-05 10:30:00", "2024/03/05", "2024-03-05T10:30:00Z"} {
		d, err := parseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, time.March, d.Month())
	}

	_, err := parseDate("03-05-2024")
	assert.Error(t, err)
}

func TestRowEvent_NullCoercion(t *testing.T) {
	idx, err := columnIndex([]string{"user_id", "date", "brand", "goods_name", "option", "content", "skin_info"})
	require.NoError(t, err)

	// short row: trailing columns absent, coerced to ""
	ev, err := rowEvent([]string{"u1", "2024-01-02", "roundlab", "dokdo toner"}, idx)
	require.NoError(t, err)
	assert.Empty(t, ev.Option)
	assert.Empty(t, ev.Content)
	assert.Empty(t, ev.SkinInfo)
	assert.Equal(t, "u1", ev.UserID)
}

func TestRowEvent_Defects(t *testing.T) {
	idx, err := columnIndex([]string{"user_id", "date", "brand", "goods_name"})
	require.NoError(t, err)

	_, err = rowEvent([]string{"", "2024-01-02", "b", "g"}, idx)
	assert.Error(t, err)

	_, err = rowEvent([]string{"u1", "not-a-date", "b", "g"}, idx)
	assert.Error(t, err)
}
