package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/honor-run-forge/internal/pkg/idgen"
)

func TestSequential(t *testing.T) {
	g := idgen.NewSequential("backup")
	assert.Equal(t, "backup-1", g.Generate())
	assert.Equal(t, "backup-2", g.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUID(t *testing.T) {
	g := idgen.NewUUID("bg3-honor-run-v3.backup")
	a := g.Generate()
	b := g.Generate()
	assert.NotEqual(t, a, b)

	require.True(t, strings.HasPrefix(a, "bg3-honor-run-v3.backup-"))
	_, err := uuid.Parse(strings.TrimPrefix(a, "bg3-honor-run-v3.backup-"))
	assert.NoError(t, err)

	_, err = uuid.Parse(idgen.NewUUID("").Generate())
	assert.NoError(t, err)
}

var _ idgen.Generator = (*idgen.UUIDGenerator)(nil)
var _ idgen.Generator = (*idgen.SequentialGenerator)(nil)
