package memmodel

import "github.com/genc-murat/collectionmem/internal/core/models"

// BuildReport produces the breakdown, comparison rows and growth outlook for
// a snapshot. Any error yields a nil report.
func BuildReport(s models.ContainerSnapshot) (*models.Report, error) {
	breakdown, err := Estimate(s)
	if err != nil {
		return nil, err
	}

	rows, err := Compare(s.Kind, s.Size)
	if err != nil {
		return nil, err
	}

	growth, err := Outlook(s)
	if err != nil {
		return nil, err
	}

	return &models.Report{
		Snapshot:     s,
		Breakdown:    breakdown,
		DisplayCount: DisplayCount(s.Size),
		Comparison:   rows,
		Growth:       growth,
	}, nil
}
