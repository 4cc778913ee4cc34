package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalhub/florist_backend/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 11, 3, 14, 30, 45, 123456789, time.UTC)
	id := "ord-1234"

	token := pagination.EncodeToken(createdAt, id)
	gotTime, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	assert.Error(t, err)

	// Valid base64 but missing the separator.
	_, _, err = pagination.DecodeToken("bm9zZXBhcmF0b3I=")
	assert.Error(t, err)
}

func TestTokenIDsWithSeparator(t *testing.T) {
	// IDs containing the separator must survive: only the first '|' splits.
	createdAt := time.Now().UTC().Truncate(time.Nanosecond)
	id := "weird|id|with|pipes"

	gotTime, gotID, err := pagination.DecodeToken(pagination.EncodeToken(createdAt, id))
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}
