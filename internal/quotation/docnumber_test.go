package quotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDocPrefixFor(t *testing.T) {
	date := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "CS20250307-", DocPrefixFor(date))
}

func TestFormatDocNumberPadsToFourDigits(t *testing.T) {
	require.Equal(t, "CS20250307-0001", FormatDocNumber("CS20250307-", 1))
	require.Equal(t, "CS20250307-0042", FormatDocNumber("CS20250307-", 42))
	require.Equal(t, "CS20250307-10000", FormatDocNumber("CS20250307-", 10000))
}

func TestNextSequence(t *testing.T) {
	prefix := "CS20250307-"

	require.Equal(t, 1, NextSequence(prefix, nil))

	existing := []string{"CS20250307-0001", "CS20250307-0003"}
	require.Equal(t, 4, NextSequence(prefix, existing))

	mixed := []string{
		"CS20250306-0009",
		"CS20250307-0002",
		"CS20250307-draft",
	}
	require.Equal(t, 3, NextSequence(prefix, mixed))
}
