package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v2"

	"github.com/genc-murat/collectionmem/internal/app"
	"github.com/genc-murat/collectionmem/internal/config"
	"github.com/genc-murat/collectionmem/internal/core/models"
	"github.com/genc-murat/collectionmem/internal/memmodel"
	"github.com/genc-murat/collectionmem/internal/metrics"
	"github.com/genc-murat/collectionmem/internal/report"
	"github.com/genc-murat/collectionmem/internal/storage"
)

func snapshotFromFlags(c *cli.Context) (models.ContainerSnapshot, error) {
	kind, err := models.ParseKind(c.String("kind"))
	if err != nil {
		return models.ContainerSnapshot{}, err
	}

	s := models.ContainerSnapshot{
		Kind:     kind,
		Size:     c.Int("size"),
		Capacity: c.Int("capacity"),
		Extra:    c.Int("extra"),
	}
	if !c.IsSet("capacity") {
		s.Capacity = s.Size
	}
	return s, nil
}

func breakdownCommand(c *cli.Context, rt *cmdEnv) error {
	s, err := snapshotFromFlags(c)
	if err != nil {
		return err
	}

	b, err := rt.estimator.Estimate(s)
	if err != nil {
		return err
	}

	if rt.cfg.Report.Format == config.FormatJSON {
		return rt.writeJSON(b)
	}

	human := rt.cfg.Report.HumanReadable
	return writeStats(rt.out, map[string]string{
		"kind":               s.Kind.String(),
		"container_overhead": report.Bytes(b.ContainerOverhead, human),
		"array_overhead":     report.Bytes(b.ArrayOverhead, human),
		"node_overhead":      report.Bytes(b.NodeOverhead, human),
		"keys_memory":        report.Bytes(b.KeysMemory, human),
		"values_memory":      report.Bytes(b.ValuesMemory, human),
		"total":              report.Bytes(b.Total, human),
	})
}

func compareCommand(c *cli.Context, rt *cmdEnv) error {
	kind, err := models.ParseKind(c.String("kind"))
	if err != nil {
		return err
	}
	size := c.Int("size")

	rows, err := rt.estimator.Compare(kind, size)
	if err != nil {
		return err
	}

	if rt.cfg.Report.Format == config.FormatJSON {
		return rt.writeJSON(rows)
	}
	_, err = io.WriteString(rt.out, report.Comparison(rows, memmodel.DisplayCount(size), rt.textOptions()))
	return err
}

func reportCommand(c *cli.Context, rt *cmdEnv) error {
	s, err := snapshotFromFlags(c)
	if err != nil {
		return err
	}

	r, err := rt.estimator.Report(s)
	if err != nil {
		return err
	}

	if rt.cfg.Report.Format == config.FormatJSON {
		return rt.writeJSON(r)
	}
	_, err = io.WriteString(rt.out, report.Text(r, rt.textOptions()))
	return err
}

func profilesCommand(c *cli.Context, rt *cmdEnv) error {
	profiles := memmodel.Profiles()
	if rt.cfg.Report.Format == config.FormatJSON {
		return rt.writeJSON(profiles)
	}

	for _, p := range profiles {
		fmt.Fprintf(rt.out, "%-10s base=%d ref=%d node=%d array_header=%d key=%d value=%d default_capacity=%d growth=%s\n",
			p.Kind, p.BaseOverhead, p.PerReferenceBytes, p.PerNodeBytes, p.ArrayHeaderBytes,
			p.KeyBytes, p.ValueBytes, p.DefaultCapacity, p.Growth)
	}
	return nil
}

func batchCommand(c *cli.Context, rt *cmdEnv) error {
	snaps, err := app.LoadBatch(c.String("file"))
	if err != nil {
		return err
	}

	results, err := rt.estimator.Batch(c.Context, snaps)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}

	if rt.cfg.Report.Format == config.FormatJSON {
		if err := rt.writeJSON(results); err != nil {
			return err
		}
	} else {
		for i, res := range results {
			if res.Err != nil {
				fmt.Fprintf(rt.out, "[%d] %s: %v\n\n", i, res.Snapshot.Kind, res.Err)
				continue
			}
			fmt.Fprintf(rt.out, "[%d] %s\n\n", i, report.Text(res.Report, rt.textOptions()))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d snapshots failed", failed, len(results))
	}
	return nil
}

func historyCommand(c *cli.Context, rt *cmdEnv) error {
	reportLog := rt.reportLog
	if reportLog == nil {
		path := rt.cfg.ReportLog.Path
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("no report log at %s: %w", path, err)
		}
		opened, err := storage.NewReportLog(path)
		if err != nil {
			return err
		}
		defer opened.Close()
		reportLog = opened
	}

	reports, err := app.History(reportLog, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("%s: %w", reportLog.Path(), err)
	}

	if rt.cfg.Report.Format == config.FormatJSON {
		if reports == nil {
			reports = []models.Report{}
		}
		return rt.writeJSON(reports)
	}

	if len(reports) == 0 {
		_, err := fmt.Fprintf(rt.out, "no reports in %s\n", reportLog.Path())
		return err
	}
	for i := range reports {
		fmt.Fprintf(rt.out, "[%d] %s\n\n", i, report.Text(&reports[i], rt.textOptions()))
	}
	return nil
}

func (rt *cmdEnv) textOptions() report.Options {
	return report.Options{
		Width:         rt.cfg.Report.Width,
		HumanReadable: rt.cfg.Report.HumanReadable,
	}
}

func (rt *cmdEnv) writeJSON(v interface{}) error {
	data, err := report.JSON(v)
	if err != nil {
		return err
	}

	if rt.query != "" {
		result := gjson.GetBytes(data, rt.query)
		if !result.Exists() {
			return fmt.Errorf("query %q matched nothing", rt.query)
		}
		_, err = fmt.Fprintln(rt.out, result.String())
		return err
	}

	_, err = fmt.Fprintln(rt.out, string(data))
	return err
}

func writeStats(w io.Writer, info map[string]string) error {
	_, err := io.WriteString(w, report.Stats(info))
	return err
}

// printStats writes the counters as key:value lines, or as the nested
// stats document in JSON mode.
func printStats(w io.Writer, m *metrics.Metrics, format string) error {
	if format == config.FormatJSON {
		data, err := report.JSON(m.GetStats())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return writeStats(w, m.Info())
}
