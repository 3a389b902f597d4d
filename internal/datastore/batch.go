// batch.go: generic de-duplicated transactional batch creation
package datastore

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/gamevault/gamevault/internal/errors"
)

// NewKeyNormalizer returns the unique-key normalization function for the
// configured de-duplication policy. "exact" compares names verbatim, "trim"
// ignores surrounding whitespace, "fold" additionally ignores case.
func NewKeyNormalizer(policy string) func(string) string {
	switch policy {
	case "trim":
		return strings.TrimSpace
	case "fold":
		return func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	default:
		return func(s string) string { return s }
	}
}

// findAll loads all rows of the given entity kind.
func findAll[T any](ctx context.Context, ds *DataStore) ([]T, error) {
	var out []T
	if err := ds.DB.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, dbError(err, "find-all")
	}
	return out, nil
}

// entityRefs loads the partial (id, external id, name) projection of the given
// entity kind, used to build reconciliation maps and the dedup key set.
func entityRefs[T any](ctx context.Context, ds *DataStore) ([]EntityRef, error) {
	var refs []EntityRef
	var model T
	err := ds.DB.WithContext(ctx).
		Model(&model).
		Select("id", "external_id", "name").
		Find(&refs).Error
	if err != nil {
		return nil, dbError(err, "entity-refs")
	}
	return refs, nil
}

// createMany persists a batch of new entities of one kind. Entries whose
// normalized name already exists in storage are filtered out first; the
// remaining batch is written in a single transaction that is rolled back
// entirely on any error. Returns the number of rows actually created.
func createMany[T any](ctx context.Context, ds *DataStore, kind string, items []*T, nameOf func(*T) string) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	// Step 1: de-duplicate against names already present in storage
	var model T
	var existingNames []string
	err := ds.DB.WithContext(ctx).
		Model(&model).
		Pluck("name", &existingNames).Error
	if err != nil {
		return 0, dbError(err, "dedup-names", "kind", kind)
	}

	existing := make(map[string]struct{}, len(existingNames))
	for _, name := range existingNames {
		existing[ds.normalize(name)] = struct{}{}
	}

	fresh := make([]*T, 0, len(items))
	for _, item := range items {
		if _, ok := existing[ds.normalize(nameOf(item))]; ok {
			continue
		}
		fresh = append(fresh, item)
	}

	if len(fresh) == 0 {
		return 0, nil
	}

	// Step 2: all-or-nothing transactional write. The transaction closure
	// guarantees rollback on error and commit on success.
	err = ds.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&fresh).Error
	})
	if err != nil {
		return 0, errors.Newf("batch create failed for %s (%d items): %w", kind, len(fresh), err).
			Category(errors.CategoryDatabase).
			Context("kind", kind).
			Context("batch_size", len(fresh)).
			Component("datastore").
			Build()
	}

	return len(fresh), nil
}

// dbError creates a properly categorized database error with context
func dbError(err error, operation string, context ...any) error {
	builder := errors.New(err).
		Component("datastore").
		Category(errors.CategoryDatabase).
		Context("operation", operation)

	for i := 0; i < len(context)-1; i += 2 {
		if key, ok := context[i].(string); ok {
			builder = builder.Context(key, context[i+1])
		}
	}

	return builder.Build()
}
