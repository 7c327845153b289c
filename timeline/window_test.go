package timeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/moment/moment"
	"github.com/warp/moment/timeline"
)

func TestWindowOf(t *testing.T) {
	m := at(t, "2016-03-15 23:36:12.532")

	w, err := timeline.WindowOf(m, moment.Month)
	require.NoError(t, err)

	assert.Equal(t, "[2016-03-01 00:00:00.000, 2016-03-31 23:59:59.999]", w.String())
	assert.Equal(t, "2016-03-15 23:36:12.532", m.MustFormat(layout), "source untouched")
}

func TestWindow_ContainsBoundsIncluded(t *testing.T) {
	w, err := timeline.WindowOf(at(t, "2016-03-15 23:36:12.532"), moment.DayOfMonth)
	require.NoError(t, err)

	assert.True(t, w.Contains(at(t, "2016-03-15 00:00:00.000")))
	assert.True(t, w.Contains(at(t, "2016-03-15 23:59:59.999")))
	assert.False(t, w.Contains(at(t, "2016-03-16 00:00:00.000")))
	assert.False(t, w.Contains(at(t, "2016-03-14 23:59:59.999")))
}

func TestWindow_NextPrevious(t *testing.T) {
	w, err := timeline.WindowOf(at(t, "2016-01-31 10:00:00.000"), moment.Month)
	require.NoError(t, err)

	assert.Equal(t, "[2016-02-01 00:00:00.000, 2016-02-29 23:59:59.999]", w.Next().String())
	assert.Equal(t, "[2015-12-01 00:00:00.000, 2015-12-31 23:59:59.999]", w.Previous().String())
	assert.Equal(t, w.String(), w.Next().Previous().String())
}

func TestWindowOf_RejectsEra(t *testing.T) {
	_, err := timeline.WindowOf(at(t, "2016-03-15 23:36:12.532"), moment.Era)

	assert.ErrorIs(t, err, moment.ErrInvalidArgument)
}
