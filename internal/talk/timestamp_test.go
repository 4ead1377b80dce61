package talk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimestamp(t *testing.T) {
	ts, err := BuildTimestamp(Date{Year: "2020", Month: "02", Day: "29"}, "23:59")
	require.NoError(t, err)
	assert.Equal(t, "2020-02-29T23:59:00+09:00", rfc(ts))
	assert.Equal(t, "2020-02-29T14:59:00Z", rfc(ts.UTC()))
}

func TestBuildTimestamp_Strict(t *testing.T) {
	d := Date{Year: "2020", Month: "01", Day: "01"}
	for _, hhmm := range []string{"24:00", "10:60", "ab:cd", "10", "10:00:00", "", " 10:00", "9:05", "10:5", "１０:００"} {
		t.Run(hhmm, func(t *testing.T) {
			_, err := BuildTimestamp(d, hhmm)
			assert.ErrorIs(t, err, ErrMalformedTimestamp)
		})
	}
}
