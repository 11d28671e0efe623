package frigocheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	frigocheck "github.com/frigocheck/go-frigocheck"
)

func TestDecodeToken(t *testing.T) {
	t.Run("extracts id and email from payload segment", func(t *testing.T) {
		// Payload segment decodes to {"id":42,"email":"a@b.com"}. The
		// header and signature segments are junk on purpose: only the
		// middle segment matters.
		claims := frigocheck.DecodeToken("x.eyJpZCI6NDIsImVtYWlsIjoiYUBiLmNvbSJ9.y")

		require.NotNil(t, claims)
		assert.Equal(t, "42", claims.ID.String())
		assert.Equal(t, "a@b.com", claims.Email)
	})

	t.Run("accepts string-encoded ids", func(t *testing.T) {
		// {"id":"42","email":"a@b.com"}
		claims := frigocheck.DecodeToken("x.eyJpZCI6IjQyIiwiZW1haWwiOiJhQGIuY29tIn0.y")

		require.NotNil(t, claims)
		assert.Equal(t, "42", claims.ID.String())
	})

	t.Run("returns nil on empty token", func(t *testing.T) {
		assert.Nil(t, frigocheck.DecodeToken(""))
	})

	t.Run("returns nil on wrong segment count", func(t *testing.T) {
		assert.Nil(t, frigocheck.DecodeToken("only-one-segment"))
		assert.Nil(t, frigocheck.DecodeToken("two.segments"))
		assert.Nil(t, frigocheck.DecodeToken("a.b.c.d"))
	})

	t.Run("returns nil on undecodable payload", func(t *testing.T) {
		assert.Nil(t, frigocheck.DecodeToken("x.%%%.y"))
	})

	t.Run("returns nil on non-JSON payload", func(t *testing.T) {
		// Middle segment decodes to "not json".
		assert.Nil(t, frigocheck.DecodeToken("x.bm90IGpzb24.y"))
	})

	t.Run("missing claims decode to zero values", func(t *testing.T) {
		// {"sub":"whatever"}
		claims := frigocheck.DecodeToken("x.eyJzdWIiOiJ3aGF0ZXZlciJ9.y")

		require.NotNil(t, claims)
		assert.True(t, claims.ID.IsZero())
		assert.Empty(t, claims.Email)
	})
}
