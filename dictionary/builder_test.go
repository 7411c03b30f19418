package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildLoadRoundTrip checks that loading a dictionary built from source
// files reproduces the source without loss: bucket and pattern counts match
// the distinct surfaces, and the connection matrix round-trips exactly.
func TestBuildLoadRoundTrip(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, NewBuilder(false).Build("testdata/fixture", out))

	sys, err := LoadSystemDictionary(out)
	require.NoError(t, err)
	defer sys.Close()

	const distinctSurfaces = 12 // rows in testdata/fixture/system.csv, all distinct
	assert.Equal(t, distinctSurfaces, sys.Tokens.Len())
	assert.Equal(t, distinctSurfaces, len(sys.AC.PatternLens))

	assert.Equal(t, int32(1), sys.ConnectionCost.ForwardSize)
	assert.Equal(t, int32(1), sys.ConnectionCost.BackwardSize)
	assert.Equal(t, int32(0), sys.ConnectionCost.Cost(0, 0))

	for _, class := range []CharacterClass{DEFAULT, ALPHA, SYMBOL, HANGUL, GREEK} {
		assert.NotNil(t, sys.Unknown.MorphemeFor(class), "class %s", class)
	}
	assert.Equal(t, HANGUL, sys.Unknown.ClassOf('가'))
	assert.Equal(t, ALPHA, sys.Unknown.ClassOf('A'))
	assert.Equal(t, HANGUL, sys.Unknown.ClassOf(0))
}

func TestBuildMissingCSVFails(t *testing.T) {
	out := t.TempDir()
	empty := t.TempDir()
	err := NewBuilder(false).Build(empty, out)
	assert.Error(t, err)
}
