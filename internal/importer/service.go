package importer

import (
	"fmt"
	"io"

	"github.com/kritchanat/dormdesk/internal/importer/roster"
	"github.com/kritchanat/dormdesk/internal/tenant"
)

type Service struct {
	rosterImporter Importer
}

func NewService() *Service {
	return &Service{
		rosterImporter: roster.NewParser(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]tenant.RosterEntry, error) {
	var importer Importer

	switch source {
	case SourceRoster:
		importer = s.rosterImporter
	default:
		return nil, fmt.Errorf("unknown import source: %s", source)
	}

	return importer.Parse(r)
}
