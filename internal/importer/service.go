package importer

import (
	"fmt"
	"io"
	"time"

	"github.com/keystone-apparel/keystone/internal/importer/keystone"
	"github.com/keystone-apparel/keystone/internal/importer/legacy"
	"github.com/keystone-apparel/keystone/internal/sale"
)

type Service struct {
	csvImporter    Importer
	legacyImporter Importer
}

// NewService builds the importers. loc is the zone for timestamps that carry
// no offset.
func NewService(loc *time.Location) *Service {
	return &Service{
		csvImporter:    keystone.NewParser(loc),
		legacyImporter: legacy.New(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]*sale.Sale, error) {
	var importer Importer

	switch source {
	case SourceCSV, "":
		importer = s.csvImporter
	case SourceLegacy:
		importer = s.legacyImporter
	default:
		return nil, fmt.Errorf("unknown source: %s", source)
	}

	return importer.Parse(r)
}
