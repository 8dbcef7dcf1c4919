package suite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/conform/internal/testutil"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_list.lisp", "a_add.lisp", "c_let.lisp", "notes.txt", ".hidden.lisp"} {
		testutil.WriteFile(t, dir, name, "; OUTPUT(0)\n")
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.lisp"), 0755))
	testutil.WriteFile(t, filepath.Join(dir, "nested.lisp"), "x.lisp", "; OUTPUT(0)\n")

	tests := []struct {
		name  string
		match string
		want  []string
	}{
		{"all", "", []string{"a_add.lisp", "b_list.lisp", "c_let.lisp"}},
		{"glob", "[ab]_*", []string{"a_add.lisp", "b_list.lisp"}},
		{"exact", "c_let.lisp", []string{"c_let.lisp"}},
		{"none", "zzz*", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Discover(dir, ".lisp", tt.match)
			require.NoError(t, err)
			var want []string
			for _, n := range tt.want {
				want = append(want, filepath.Join(dir, n))
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestDiscover_EmptyDirectory(t *testing.T) {
	got, err := Discover(t.TempDir(), ".lisp", "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscover_MissingDirectory(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "nope"), ".lisp", "")
	assert.Error(t, err)
}

func TestDiscover_BadPattern(t *testing.T) {
	_, err := Discover(t.TempDir(), ".lisp", "[abc")
	assert.Error(t, err)
}
