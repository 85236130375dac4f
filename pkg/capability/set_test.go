package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobsgrj/nono/pkg/api"
)

func TestSet_DuplicatesCollapseByModeJoin(t *testing.T) {
	s := NewSet()
	s.InsertCanonical("/proj", api.ScopeTree, api.AccessRead)
	s.InsertCanonical("/proj", api.ScopeTree, api.AccessWrite)

	grants := s.Iter()
	require.Len(t, grants, 1)
	assert.Equal(t, api.Grant{Path: "/proj", Scope: api.ScopeTree, Access: api.AccessReadWrite}, grants[0])
}

func TestSet_TreeDominatesFileAtSamePath(t *testing.T) {
	s := NewSet()
	s.InsertCanonical("/proj", api.ScopeFile, api.AccessWrite)
	s.InsertCanonical("/proj", api.ScopeTree, api.AccessRead)

	grants := s.Iter()
	require.Len(t, grants, 1)
	assert.Equal(t, api.ScopeTree, grants[0].Scope)
	assert.Equal(t, api.AccessReadWrite, grants[0].Access)
}

func TestSet_FileInsertJoinsIntoExistingTreeAtSamePath(t *testing.T) {
	s := NewSet()
	s.InsertCanonical("/proj", api.ScopeTree, api.AccessRead)
	s.InsertCanonical("/proj", api.ScopeFile, api.AccessWrite)

	grants := s.Iter()
	require.Len(t, grants, 1)
	assert.Equal(t, api.ScopeTree, grants[0].Scope)
	assert.Equal(t, api.AccessReadWrite, grants[0].Access)
}

func TestSet_RedundantFileUnderTreeIsDropped(t *testing.T) {
	s := NewSet()
	s.InsertCanonical("/proj", api.ScopeTree, api.AccessReadWrite)
	s.InsertCanonical("/proj/main.go", api.ScopeFile, api.AccessRead)

	require.Equal(t, 1, s.Len())
}

func TestSet_FileUnderTreeKeptWhenItAddsAccess(t *testing.T) {
	s := NewSet()
	s.InsertCanonical("/proj", api.ScopeTree, api.AccessRead)
	s.InsertCanonical("/proj/out.log", api.ScopeFile, api.AccessWrite)

	require.Equal(t, 2, s.Len())
	assert.True(t, s.Covers("/proj/out.log", api.AccessWrite))
	assert.True(t, s.Covers("/proj/out.log", api.AccessRead))
}

func TestSet_TreeDescendantJoinsIntoAncestor(t *testing.T) {
	s := NewSet()
	s.InsertCanonical("/a", api.ScopeTree, api.AccessRead)
	s.InsertCanonical("/a/b", api.ScopeTree, api.AccessWrite)

	grants := s.Iter()
	require.Len(t, grants, 1)
	assert.Equal(t, "/a", grants[0].Path)
	assert.Equal(t, api.AccessReadWrite, grants[0].Access)
}

func TestSet_TreeAncestorAbsorbsExistingDescendants(t *testing.T) {
	s := NewSet()
	s.InsertCanonical("/a/b", api.ScopeTree, api.AccessWrite)
	s.InsertCanonical("/a/c", api.ScopeTree, api.AccessRead)
	s.InsertCanonical("/a", api.ScopeTree, api.AccessRead)

	grants := s.Iter()
	require.Len(t, grants, 1)
	assert.Equal(t, "/a", grants[0].Path)
	assert.Equal(t, api.AccessReadWrite, grants[0].Access)
}

func TestSet_TreeEntriesFormAntichain(t *testing.T) {
	s := NewSet()
	s.InsertCanonical("/a", api.ScopeTree, api.AccessRead)
	s.InsertCanonical("/a/b/c", api.ScopeTree, api.AccessRead)
	s.InsertCanonical("/x", api.ScopeTree, api.AccessWrite)
	s.InsertCanonical("/x/y", api.ScopeTree, api.AccessReadWrite)

	for _, g := range s.Iter() {
		if g.Scope != api.ScopeTree {
			continue
		}
		for _, other := range s.Iter() {
			if other.Scope != api.ScopeTree || other.Path == g.Path {
				continue
			}
			assert.False(t, isDescendant(g.Path, other.Path),
				"tree entry %s is a descendant of tree entry %s", g.Path, other.Path)
		}
	}
}

func TestSet_CoversExactFileOnly(t *testing.T) {
	s := NewSet()
	s.InsertCanonical("/etc/hosts", api.ScopeFile, api.AccessRead)

	assert.True(t, s.Covers("/etc/hosts", api.AccessRead))
	assert.False(t, s.Covers("/etc/hosts.bak", api.AccessRead))
	assert.False(t, s.Covers("/etc", api.AccessRead))
}

func TestSet_CoversTreeDescendants(t *testing.T) {
	s := NewSet()
	s.InsertCanonical("/proj", api.ScopeTree, api.AccessReadWrite)

	assert.True(t, s.Covers("/proj", api.AccessReadWrite))
	assert.True(t, s.Covers("/proj/deep/nested/file", api.AccessWrite))
	assert.False(t, s.Covers("/projevil", api.AccessRead), "component-wise prefix only")
	assert.False(t, s.Covers("/other", api.AccessRead))
}

func TestSet_CoversIsMonotoneInAccess(t *testing.T) {
	tests := []struct {
		name    string
		granted api.Access
	}{
		{"read", api.AccessRead},
		{"write", api.AccessWrite},
		{"readwrite", api.AccessReadWrite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet()
			s.InsertCanonical("/proj", api.ScopeTree, tt.granted)

			// ReadWrite coverage implies both Read and Write coverage.
			if s.Covers("/proj/f", api.AccessReadWrite) {
				assert.True(t, s.Covers("/proj/f", api.AccessRead))
				assert.True(t, s.Covers("/proj/f", api.AccessWrite))
			}
			// Read coverage never implies ReadWrite by itself.
			if tt.granted == api.AccessRead {
				assert.False(t, s.Covers("/proj/f", api.AccessReadWrite))
			}
		})
	}
}

func TestSet_IterOrderIsDeterministic(t *testing.T) {
	s := NewSet()
	s.InsertCanonical("/b", api.ScopeTree, api.AccessRead)
	s.InsertCanonical("/a", api.ScopeTree, api.AccessWrite)
	s.InsertCanonical("/a/file", api.ScopeFile, api.AccessRead)
	s.InsertCanonical("/c", api.ScopeFile, api.AccessReadWrite)

	grants := s.Iter()
	var paths []string
	for _, g := range grants {
		paths = append(paths, g.Path)
	}
	assert.Equal(t, []string{"/a", "/a/file", "/b", "/c"}, paths)
}

func TestSet_NetworkDefaultsToAllowed(t *testing.T) {
	s := NewSet()
	assert.Equal(t, api.NetworkAllowed, s.Network())

	s.SetNetwork(api.NetworkBlocked)
	assert.Equal(t, api.NetworkBlocked, s.Network())
}

func TestSet_InsertRejectsNonexistentPath(t *testing.T) {
	s := NewSet()
	err := s.Insert("/does/not/exist/anywhere", api.ScopeTree, api.AccessRead)
	require.ErrorIs(t, err, ErrPathNotExist)
	assert.Equal(t, 0, s.Len())
}

func TestSet_InsertCanonicalizes(t *testing.T) {
	dir := t.TempDir()
	s := NewSet()
	require.NoError(t, s.Insert(dir+"/./", api.ScopeTree, api.AccessRead))

	grants := s.Iter()
	require.Len(t, grants, 1)
	canon, err := Canonicalize(dir)
	require.NoError(t, err)
	assert.Equal(t, canon, grants[0].Path)
}
