package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
)

func TestMetaFor(t *testing.T) {
	meta, ok := metaFor("/batches")
	require.True(t, ok)
	assert.Equal(t, domainauth.ModuleBatchManagement, meta.Module)

	// Item routes inherit the view's metadata.
	meta, ok = metaFor("/batches/3/delete")
	require.True(t, ok)
	assert.Equal(t, domainauth.ModuleBatchManagement, meta.Module)

	meta, ok = metaFor("/users")
	require.True(t, ok)
	assert.True(t, meta.AdminOnly)

	_, ok = metaFor("/healthz")
	assert.False(t, ok)

	// Prefix matching requires a path boundary.
	_, ok = metaFor("/batchesX")
	assert.False(t, ok)
}

func TestSafeRedirectTarget(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/dashboard"},
		{"/sensors", "/sensors"},
		{"/batches?error=x", "/batches?error=x"},
		{"//evil.example", "/dashboard"},
		{"https://evil.example/phish", "/dashboard"},
		{"sensors", "/dashboard"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeRedirectTarget(tt.in), "input %q", tt.in)
	}
}
