package moment_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/moment/moment"
)

func TestJSON_RoundTrip(t *testing.T) {
	m := at(t, "2016-03-15 23:36:12.532")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"2016-03-15T23:36:12.532Z"`, string(data))

	var back moment.Moment
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(m))
}

func TestJSON_KeepsReceiverCalendar(t *testing.T) {
	back := utc.FromEpochMillis(0)

	require.NoError(t, json.Unmarshal([]byte(`"2016-03-16T01:36:12.532+02:00"`), back))

	assert.Equal(t, "2016-03-15 23:36:12.532", render(t, back))
}

func TestJSON_EpochMillisAndNull(t *testing.T) {
	var payload struct {
		At *moment.Moment `json:"at"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"at":1458084972532}`), &payload))
	require.NotNil(t, payload.At)
	assert.Equal(t, int64(1458084972532), payload.At.UnixMilli())

	m := utc.FromEpochMillis(42)
	require.NoError(t, m.UnmarshalJSON([]byte("null")))
	assert.Equal(t, int64(42), m.UnixMilli())

	assert.Error(t, m.UnmarshalJSON([]byte(`{"nope":true}`)))
}

func TestText_RejectsGarbage(t *testing.T) {
	var m moment.Moment

	err := m.UnmarshalText([]byte("yesterday"))

	assert.ErrorIs(t, err, moment.ErrParse)
}

func TestSQL_ValueAndScan(t *testing.T) {
	m := at(t, "2016-03-15 23:36:12.532")

	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(1458084972532), v)

	sources := []any{
		int64(1458084972532),
		"2016-03-15T23:36:12.532Z",
		[]byte("1458084972532"),
		time.UnixMilli(1458084972532),
	}
	for _, src := range sources {
		back := utc.FromEpochMillis(0)
		require.NoError(t, back.Scan(src), "%T", src)
		assert.True(t, back.Equal(m), "%T", src)
	}

	var target moment.Moment
	assert.ErrorIs(t, target.Scan(nil), moment.ErrInvalidArgument)
	assert.ErrorIs(t, target.Scan(3.5), moment.ErrInvalidArgument)
}
