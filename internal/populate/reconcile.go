package populate

import (
	"github.com/gamevault/gamevault/internal/datastore"
	"github.com/gamevault/gamevault/internal/errors"
	"github.com/gamevault/gamevault/internal/giantbomb"
)

// externalIDIndex builds a lookup from provider id to internal id out of
// the refs returned by the datastore. Refs without an external id are
// skipped; two refs claiming the same external id is a data bug and is
// reported instead of silently picking one.
func externalIDIndex(kind string, refs []datastore.EntityRef) (map[int]uint, error) {
	idx := make(map[int]uint, len(refs))
	for _, ref := range refs {
		if ref.ExternalID == nil {
			continue
		}
		if existing, ok := idx[*ref.ExternalID]; ok && existing != ref.ID {
			return nil, errors.Newf("%s external id %d maps to internal ids %d and %d", kind, *ref.ExternalID, existing, ref.ID).
				Component("populate").
				Category(errors.CategoryConflict).
				Context("kind", kind).
				Context("external_id", *ref.ExternalID).
				Build()
		}
		idx[*ref.ExternalID] = ref.ID
	}
	return idx, nil
}

// resolve maps a single provider id to its internal id.
func resolve(idx map[int]uint, externalID int) (uint, bool) {
	id, ok := idx[externalID]
	return id, ok
}

// resolveAll maps a list of provider refs to internal ids, dropping the
// ones that are not present in the index. The dropped count is returned
// so the caller can log it.
func resolveAll(idx map[int]uint, refs []giantbomb.Ref) ([]uint, int) {
	if len(refs) == 0 {
		return nil, 0
	}
	resolved := make([]uint, 0, len(refs))
	dropped := 0
	for _, ref := range refs {
		id, ok := idx[ref.ID]
		if !ok {
			dropped++
			continue
		}
		resolved = append(resolved, id)
	}
	if len(resolved) == 0 {
		return nil, dropped
	}
	return resolved, dropped
}
