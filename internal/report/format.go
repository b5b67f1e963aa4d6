package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/genc-murat/collectionmem/internal/core/models"
)

const (
	DefaultWidth = 44
	minWidth     = 24
)

// Options controls text rendering. Nothing here is global state; callers
// pass it explicitly on every call.
type Options struct {
	Width         int
	HumanReadable bool
}

// Bytes formats a byte count as either "1068 bytes" or an IEC size.
func Bytes(n int64, human bool) string {
	if human && n >= 0 {
		return humanize.IBytes(uint64(n))
	}
	return strconv.FormatInt(n, 10) + " bytes"
}

// Text renders a report as fixed-width panels. A nil report renders as an
// empty string so callers never show a partial report.
func Text(r *models.Report, opts Options) string {
	if r == nil {
		return ""
	}

	width := opts.Width
	if width < minWidth {
		width = DefaultWidth
	}
	rule := strings.Repeat("-", width) + "\n"

	var builder strings.Builder
	b := r.Breakdown
	s := r.Snapshot

	builder.WriteString(header(s))
	builder.WriteString(rule)
	writeLine(&builder, "Container overhead", Bytes(b.ContainerOverhead, opts.HumanReadable), width)
	writeLine(&builder, "Array/table overhead", Bytes(b.ArrayOverhead, opts.HumanReadable), width)
	writeLine(&builder, "Node overhead", Bytes(b.NodeOverhead, opts.HumanReadable), width)
	if s.Kind == models.Deque {
		writeLine(&builder, "Elements", Bytes(b.KeysMemory, opts.HumanReadable), width)
	} else {
		writeLine(&builder, "Keys", Bytes(b.KeysMemory, opts.HumanReadable), width)
		writeLine(&builder, "Values", Bytes(b.ValuesMemory, opts.HumanReadable), width)
	}
	builder.WriteString(rule)
	writeLine(&builder, "Total", Bytes(b.Total, opts.HumanReadable), width)

	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("Growth\n%s", rule))
	g := r.Growth
	if g.Policy == models.GrowthNone {
		writeLine(&builder, "Min tree height", strconv.Itoa(g.MinTreeHeight), width)
		if g.TreeHeight > 0 {
			writeLine(&builder, "Reported tree height", strconv.Itoa(g.TreeHeight), width)
		}
	} else {
		writeLine(&builder, "Default capacity", strconv.Itoa(g.DefaultCapacity), width)
		writeLine(&builder, "Growth policy", g.Policy.String(), width)
		writeLine(&builder, "Load factor", strconv.FormatFloat(g.LoadFactor, 'f', 2, 64), width)
		writeLine(&builder, "Resize threshold", strconv.Itoa(g.Threshold), width)
		writeLine(&builder, "Utilization", strconv.FormatFloat(g.Utilization*100, 'f', 1, 64)+"%", width)
		writeLine(&builder, "Next capacity", strconv.Itoa(g.NextCapacity), width)
	}

	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf("Comparison at n=%d\n%s", r.DisplayCount, rule))
	for _, row := range r.Comparison {
		label := "  " + row.Name
		if row.Source {
			label = "* " + row.Name
		}
		writeLine(&builder, label, Bytes(row.EstimatedTotalBytes, opts.HumanReadable), width)
		for _, note := range row.Tradeoffs {
			builder.WriteString("    - ")
			builder.WriteString(note)
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// Comparison renders only the comparison rows.
func Comparison(rows []models.ComparisonRow, n int, opts Options) string {
	if len(rows) == 0 {
		return ""
	}
	width := opts.Width
	if width < minWidth {
		width = DefaultWidth
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Comparison at n=%d\n%s", n, strings.Repeat("-", width)+"\n"))
	for _, row := range rows {
		writeLine(&builder, row.Name, Bytes(row.EstimatedTotalBytes, opts.HumanReadable), width)
	}
	return builder.String()
}

// JSON renders any engine output as indented JSON.
func JSON(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding report: %w", err)
	}
	return data, nil
}

// Stats takes a map of stat key-values and returns them one per line,
// sorted by key.
func Stats(info map[string]string) string {
	var builder strings.Builder
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		builder.WriteString(k)
		builder.WriteString(":")
		builder.WriteString(info[k])
		builder.WriteString("\n")
	}
	return builder.String()
}

func header(s models.ContainerSnapshot) string {
	if s.Kind == models.SortedMap {
		return fmt.Sprintf("%s (size=%d)\n", s.Kind.Title(), s.Size)
	}
	return fmt.Sprintf("%s (size=%d, capacity=%d)\n", s.Kind.Title(), s.Size, s.Capacity)
}

func writeLine(builder *strings.Builder, label, value string, width int) {
	pad := width - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	builder.WriteString(label)
	builder.WriteString(strings.Repeat(" ", pad))
	builder.WriteString(value)
	builder.WriteString("\n")
}
