package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/nxcube"
)

func TestNetSolvedMono(t *testing.T) {
	p, err := nxcube.New(3)
	require.NoError(t, err)

	out := Net(p, SchemeMono)
	t.Log("\n" + out)

	for _, letter := range []string{"W", "Y", "G", "B", "R", "O"} {
		assert.Equal(t, 9, strings.Count(out, letter), "color %s", letter)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, strings.Repeat(" ", 7)+"W W W ", lines[0])
	assert.True(t, strings.HasPrefix(lines[3], "O O O  G G G  R R R  B B B"), lines[3])
	assert.Equal(t, strings.Repeat(" ", 7)+"Y Y Y ", lines[8])
}

func TestNetAfterTurn(t *testing.T) {
	p, err := nxcube.New(3)
	require.NoError(t, err)
	r, ok := nxcube.KeyRotation('U', 3, nxcube.Standard)
	require.True(t, ok)
	require.NoError(t, p.Apply(r))

	out := Net(p, SchemeMono)
	lines := strings.Split(out, "\n")
	// The top row of the middle strip no longer reads L F R B.
	assert.False(t, strings.HasPrefix(lines[3], "O O O  G G G"), lines[3])
	assert.Equal(t, 9, strings.Count(out, "W"))
}

func TestNetVoidShowsHoles(t *testing.T) {
	p, err := nxcube.New(3, nxcube.WithMode(nxcube.Void))
	require.NoError(t, err)

	out := Net(p, SchemeMono)
	assert.Equal(t, 6, strings.Count(out, "."))
}

func TestSchemeCycle(t *testing.T) {
	assert.Equal(t, SchemeLetters, SchemeColor.Next())
	assert.Equal(t, SchemeMono, SchemeLetters.Next())
	assert.Equal(t, SchemeColor, SchemeMono.Next())

	s, err := ParseScheme("Mono")
	require.NoError(t, err)
	assert.Equal(t, SchemeMono, s)
	_, err = ParseScheme("plaid")
	assert.Error(t, err)
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░", ProgressBar(0, 4))
	assert.Equal(t, "██░░", ProgressBar(0.5, 4))
	assert.Equal(t, "████", ProgressBar(2, 4))
}
