package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPOSTagFromNamePrefixCollapsing checks that any name starting with "J"
// or "E" collapses to the coarse J/E tag, the historical aliases collapse to
// UNKNOWN, exact names resolve, and empty or unknown names are rejected.
func TestPOSTagFromNamePrefixCollapsing(t *testing.T) {
	jNames := []string{"J", "JKS", "JKO", "JX", "JC"}
	for _, name := range jNames {
		tag, err := POSTagFromName(name)
		assert.NoError(t, err)
		assert.Equal(t, J, tag, "name %q", name)
	}

	eNames := []string{"E", "EP", "EF", "EC", "ETN", "ETM"}
	for _, name := range eNames {
		tag, err := POSTagFromName(name)
		assert.NoError(t, err)
		assert.Equal(t, E, tag, "name %q", name)
	}

	for _, name := range []string{"UNA", "NA", "VSV"} {
		tag, err := POSTagFromName(name)
		assert.NoError(t, err)
		assert.Equal(t, UNKNOWN, tag, "alias %q", name)
	}

	tag, err := POSTagFromName("NNG")
	assert.NoError(t, err)
	assert.Equal(t, NNG, tag)

	_, err = POSTagFromName("")
	assert.Error(t, err)

	_, err = POSTagFromName("NOTATAG")
	assert.Error(t, err)
}

func TestPOSTypeFromNameSynonyms(t *testing.T) {
	for _, name := range []string{"*", "MORPHEME", "morpheme"} {
		typ, err := POSTypeFromName(name)
		assert.NoError(t, err)
		assert.Equal(t, MORPHEME, typ, "name %q", name)
	}

	typ, err := POSTypeFromName("COMPOUND")
	assert.NoError(t, err)
	assert.Equal(t, COMPOUND, typ)

	_, err = POSTypeFromName("BOGUS")
	assert.Error(t, err)
}
