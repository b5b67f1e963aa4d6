package ports

import "github.com/genc-murat/collectionmem/internal/core/models"

// ReportSink persists generated reports.
type ReportSink interface {
	Write(r *models.Report) error
	Read(callback func(r models.Report)) error
	Close() error
}
