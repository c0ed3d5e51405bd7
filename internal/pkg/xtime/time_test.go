package xtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNowIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Now().Location())
}

func TestSetNowFunc(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	setNowFunc(func() time.Time { return fixed })

	t.Cleanup(resetNowFunc)

	assert.Equal(t, fixed, Now())
}
