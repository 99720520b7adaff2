package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTimeMarshalJSON(t *testing.T) {
	lt := LocalTime(time.Date(2026, 9, 10, 14, 30, 5, 0, time.UTC))

	data, err := lt.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2026-09-10 14:30:05"`, string(data))
}

func TestLocalTimeMarshalJSONZeroValueIsNull(t *testing.T) {
	data, err := LocalTime{}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
