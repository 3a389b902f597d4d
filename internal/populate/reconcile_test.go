package populate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/gamevault/internal/datastore"
	"github.com/gamevault/gamevault/internal/errors"
	"github.com/gamevault/gamevault/internal/giantbomb"
)

func TestExternalIDIndex(t *testing.T) {
	refs := []datastore.EntityRef{
		{ID: 1, ExternalID: intPtr(100), Name: "Nintendo"},
		{ID: 2, ExternalID: intPtr(200), Name: "Sega"},
		{ID: 3, Name: "Manually Added"}, // no provider id
	}

	idx, err := externalIDIndex("company", refs)
	require.NoError(t, err)
	assert.Len(t, idx, 2)
	assert.Equal(t, uint(1), idx[100])
	assert.Equal(t, uint(2), idx[200])
}

func TestExternalIDIndexCollision(t *testing.T) {
	refs := []datastore.EntityRef{
		{ID: 1, ExternalID: intPtr(100)},
		{ID: 2, ExternalID: intPtr(100)},
	}

	_, err := externalIDIndex("company", refs)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConflict))
	assert.Contains(t, err.Error(), "external id 100")
}

func TestExternalIDIndexDuplicateSameInternalID(t *testing.T) {
	refs := []datastore.EntityRef{
		{ID: 1, ExternalID: intPtr(100)},
		{ID: 1, ExternalID: intPtr(100)},
	}

	idx, err := externalIDIndex("company", refs)
	require.NoError(t, err)
	assert.Equal(t, uint(1), idx[100])
}

func TestResolveAll(t *testing.T) {
	idx := map[int]uint{1: 11, 2: 12}

	resolved, dropped := resolveAll(idx, []giantbomb.Ref{{ID: 1}, {ID: 3}, {ID: 2}})
	assert.Equal(t, []uint{11, 12}, resolved)
	assert.Equal(t, 1, dropped)
}

func TestResolveAllEmptyAndAllDropped(t *testing.T) {
	resolved, dropped := resolveAll(map[int]uint{}, nil)
	assert.Nil(t, resolved)
	assert.Zero(t, dropped)

	resolved, dropped = resolveAll(map[int]uint{}, []giantbomb.Ref{{ID: 5}})
	assert.Nil(t, resolved)
	assert.Equal(t, 1, dropped)
}
