// Package entity defines the catalog data model persisted by the datastore.
package entity

// ExternalSource tags a record with the external provider it was imported from.
type ExternalSource string

const (
	// SourceGiantBomb identifies records imported from the Giant Bomb API.
	SourceGiantBomb ExternalSource = "giantbomb"
)
