package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"pyuml/internal/data/history"
)

const (
	FormatTable = "table"
	FormatTSV   = "tsv"
	FormatJSON  = "json"
)

// RenderRuns renders runs in the named format.
func RenderRuns(runs []history.Run, format string) ([]byte, error) {
	switch format {
	case "", FormatTable:
		return RenderRunsTable(runs), nil
	case FormatTSV:
		return RenderRunsTSV(runs), nil
	case FormatJSON:
		return RenderRunsJSON(runs)
	default:
		return nil, fmt.Errorf("unsupported history format %q", format)
	}
}

func RenderRunsTable(runs []history.Run) []byte {
	if len(runs) == 0 {
		return []byte("no runs recorded\n")
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("%-20s  %-36s  %5s  %7s  %10s  %9s  %6s  %s\n",
		"TIME", "RUN", "UNITS", "CLASSES", "ATTRIBUTES", "RELATIONS", "MS", "OUTPUT"))
	for _, r := range runs {
		buf.WriteString(fmt.Sprintf("%-20s  %-36s  %5d  %7d  %10d  %9d  %6d  %s\n",
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.ID,
			r.Units,
			r.Classes,
			r.Attributes,
			r.Relations,
			r.Duration.Milliseconds(),
			r.OutputPath,
		))
	}
	return []byte(buf.String())
}

func RenderRunsTSV(runs []history.Run) []byte {
	var buf strings.Builder

	buf.WriteString("Timestamp\tRun\tInput\tOutput\tUnits\tClasses\tAttributes\tRelations\tDurationMS\n")
	for _, r := range runs {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			r.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			r.ID,
			r.InputDir,
			r.OutputPath,
			r.Units,
			r.Classes,
			r.Attributes,
			r.Relations,
			r.Duration.Milliseconds(),
		))
	}
	return []byte(buf.String())
}

func RenderRunsJSON(runs []history.Run) ([]byte, error) {
	if runs == nil {
		runs = []history.Run{}
	}
	return json.MarshalIndent(runs, "", "  ")
}
