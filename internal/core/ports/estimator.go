package ports

import "github.com/genc-murat/collectionmem/internal/core/models"

type Estimator interface {
	Estimate(s models.ContainerSnapshot) (models.MemoryBreakdown, error)
	Compare(kind models.Kind, size int) ([]models.ComparisonRow, error)
	Report(s models.ContainerSnapshot) (*models.Report, error)
}
