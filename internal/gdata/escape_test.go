package gdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscapeURI_Reserved(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		allowed string
		want    string
	}{
		{"unreserved kept", "aZ09-._~", "", "aZ09-._~"},
		{"space", "a b", "", "a%20b"},
		{"reserved", "a/b?c=d&e", "", "a%2Fb%3Fc%3Dd%26e"},
		{"allowed slash", "a/b|c", "/", "a/b%7Cc"},
		{"utf-8 bytes", "ö", "", "%C3%B6"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeURI(tt.in, tt.allowed))
		})
	}
}

func TestISO8601_FormatAndParse(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   int64
		wantOK bool
	}{
		{"zulu", "2013-07-08T10:41:54Z", 1373280114, true},
		{"fractional", "2013-07-08T10:41:54.000Z", 1373280114, true},
		{"offset", "2013-07-08T12:41:54+02:00", 1373280114, true},
		{"no zone is UTC", "2013-07-08T10:41:54", 1373280114, true},
		{"basic format", "20130708T104154Z", 1373280114, true},
		{"padded", "  2013-07-08T10:41:54Z\n", 1373280114, true},
		{"empty", "", 0, false},
		{"garbage", "not a date", 0, false},
		{"date only", "2013-07-08", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseISO8601(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "2013-07-08T10:41:54Z", FormatISO8601(1373280114))
	assert.Equal(t, "1970-01-01T01:53:09Z", FormatISO8601(6789))
}

func TestDate_FormatAndParse(t *testing.T) {
	assert.Equal(t, "2013-07-08", FormatDate(1373280114))

	got, ok := ParseDate("2009-01-01")
	assert.True(t, ok)
	assert.Equal(t, int64(1230768000), got)

	_, ok = ParseDate("01/01/2009")
	assert.False(t, ok)
}

func TestTimeToUnix_ZeroIsUnset(t *testing.T) {
	assert.Equal(t, Unset, TimeToUnix(time.Time{}))
	assert.Equal(t, int64(1230768000), TimeToUnix(time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC)))
}
