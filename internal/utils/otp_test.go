package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOtpCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := NewOtpCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, ch := range code {
			require.True(t, ch >= '0' && ch <= '9', "non-digit in code %q", code)
		}
		seen[code] = true
	}
	// 200 draws from a million-code space repeating every time would
	// mean a broken generator.
	require.Greater(t, len(seen), 1)
}
