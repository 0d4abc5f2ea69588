package importer

import (
	"io"

	"github.com/keystone-apparel/keystone/internal/sale"
)

// Source identifies the format of an uploaded sales file.
type Source string

const (
	// SourceCSV is a sales spreadsheet or a file written by the export endpoint.
	SourceCSV Source = "csv"
	// SourceLegacy is a JSON dump of the old browser-local sales table.
	SourceLegacy Source = "legacy"
)

// Importer turns an uploaded file into unsaved sales. IDs and CreatedAt are
// left zero for the repository to fill in.
type Importer interface {
	Parse(r io.Reader) ([]*sale.Sale, error)
}
