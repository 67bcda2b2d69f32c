package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Project-Sylos/Studio/internal/tree"
)

func TestVariantsBuild(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			v, err := Lookup(name)
			require.NoError(t, err)

			root, err := v.Build()
			require.NoError(t, err)
			assert.Equal(t, v.RootName, root.Name)
			assert.Equal(t, v.RootName, root.ID)
			assert.True(t, root.IsFolder())

			_, ok := tree.FindFile(root, v.ActiveFile)
			assert.True(t, ok, "active file %s must exist", v.ActiveFile)
			assert.NotEmpty(t, v.StorageKey)
			assert.Equal(t, v.Greeting, v.GreetingMessage().Content)
		})
	}
}

func TestBuildReturnsIndependentTrees(t *testing.T) {
	v, err := Lookup(VariantReact)
	require.NoError(t, err)

	a, err := v.Build()
	require.NoError(t, err)
	b, err := v.Build()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("angular")
	assert.Error(t, err)
	assert.Equal(t, []string{VariantPortlet, VariantReact}, Names())
}
