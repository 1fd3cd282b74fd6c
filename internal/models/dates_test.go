package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-01")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2025-03-01T15:04:05Z")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 1, 15, 4, 5, 0, time.UTC), got)

	for _, bad := range []string{"", "yesterday", "03/01/2025", "2025-13-40"} {
		_, err := ParseDate(bad)
		require.Error(t, err, "ParseDate(%q)", bad)
	}
}

func TestMimeAllowed(t *testing.T) {
	require.True(t, MimeAllowed("application/pdf"))
	require.True(t, MimeAllowed("image/png"))
	require.False(t, MimeAllowed("application/x-msdownload"))
	require.False(t, MimeAllowed(""))
}
