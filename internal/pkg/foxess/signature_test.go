package foxess

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/anicoll/foxess-integration/internal/pkg/config"
)

func TestSignatureText_LiteralSeparators(t *testing.T) {
	t.Parallel()
	got := signatureText("/op/v1/device/detail", "token123", 1700000000000)
	// The separator is the four characters backslash r backslash n, not CR/LF.
	assert.Equal(t, `/op/v1/device/detail\r\ntoken123\r\n1700000000000`, got)
	assert.NotContains(t, got, "\r\n")
}

func TestSign_KnownVectors(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		path      string
		token     string
		timestamp int64
		expected  string
	}{
		{
			name:      "device detail",
			path:      "/op/v1/device/detail",
			token:     "token123",
			timestamp: 1700000000000,
			expected:  "5572cba3a0100558d18b9b2c79faf61b",
		},
		{
			name:      "scheduler enable",
			path:      "/op/v2/device/scheduler/enable",
			token:     "secret",
			timestamp: 1700000000000,
			expected:  "0507e33e443c926b1e1d70f78da138c5",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sign(tc.path, tc.token, tc.timestamp))
		})
	}
}

func TestAuthHeaders(t *testing.T) {
	t.Parallel()
	svc := New(&config.FoxessConfig{APIKey: "secret"}, make(chan error, 1))
	svc.logger = zaptest.NewLogger(t)

	headers := svc.authHeaders("/op/v1/device/detail")

	assert.Equal(t, "secret", headers.Get("token"))
	assert.Equal(t, "en", headers.Get("lang"))
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "close", headers.Get("Connection"))
	assert.Contains(t, headers.Get("User-Agent"), "Mozilla/5.0")

	timestamp, err := strconv.ParseInt(headers.Get("timestamp"), 10, 64)
	require.NoError(t, err)
	assert.Equal(t, sign("/op/v1/device/detail", "secret", timestamp), headers.Get("signature"))
}
