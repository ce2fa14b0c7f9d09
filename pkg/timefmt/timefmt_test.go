package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFullDate(t *testing.T) {
	ts := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)
	assert.Equal(t, "Saturday, 01 June, 2024", FullDate(ts))
}

func TestShortDateTime(t *testing.T) {
	ts := time.Date(2024, 6, 2, 11, 5, 0, 0, time.Local)
	assert.Equal(t, "Sun, 02/06/2024, 11:05", ShortDateTime(ts))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "John", Capitalize("jOHN"))
	assert.Equal(t, "A", Capitalize("a"))
	assert.Equal(t, "Émile", Capitalize("émile"), "first letter may be multi-byte")
	assert.Equal(t, "Øystein", Capitalize("øYSTEIN"))
	assert.Equal(t, "", Capitalize(""))
}
