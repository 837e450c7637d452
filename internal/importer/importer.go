package importer

import (
	"io"

	"github.com/kritchanat/dormdesk/internal/tenant"
)

type Source string

const (
	SourceRoster Source = "roster"
)

type Importer interface {
	Parse(r io.Reader) ([]tenant.RosterEntry, error)
}
