package registry

import (
	"sort"
	"strconv"

	"github.com/ridgeline-data/propmail/internal/fetcher"
	"github.com/ridgeline-data/propmail/internal/model"
)

// WriteSummary writes the run summary workbook: a totals sheet covering the
// run and each dataset pass, and a composite-code distribution sheet.
func WriteSummary(path string, run *model.LinkageRun, props []model.Property) error {
	sheets := []fetcher.Sheet{
		summarySheet(run),
		distributionSheet(props),
	}
	return fetcher.WriteWorkbook(path, sheets)
}

func summarySheet(run *model.LinkageRun) fetcher.Sheet {
	rows := [][]string{
		{"Region", run.Region},
		{"FIPS", run.FIPS},
		{"Status", string(run.Status)},
		{"Records", strconv.Itoa(run.Records)},
		{"Inserted", strconv.Itoa(run.Inserted)},
		{"Updated", strconv.Itoa(run.Updated)},
	}
	for _, ds := range run.Datasets {
		if ds.Error != "" {
			rows = append(rows, []string{"Dataset " + ds.Dataset, "SKIPPED: " + ds.Error})
			continue
		}
		rows = append(rows,
			[]string{"Dataset " + ds.Dataset + " (" + ds.SourceType + ") matched", strconv.Itoa(ds.Matched)},
			[]string{"Dataset " + ds.Dataset + " inserted", strconv.Itoa(ds.Inserted)},
			[]string{"Dataset " + ds.Dataset + " filtered", strconv.Itoa(ds.Filtered)},
			[]string{"Dataset " + ds.Dataset + " by structured id", strconv.Itoa(ds.Strategies.StructuredID)},
			[]string{"Dataset " + ds.Dataset + " by address+city", strconv.Itoa(ds.Strategies.AddressCity)},
			[]string{"Dataset " + ds.Dataset + " by address only", strconv.Itoa(ds.Strategies.AddressOnly)},
		)
	}
	return fetcher.Sheet{Name: "Summary", Header: []string{"Metric", "Value"}, Rows: rows}
}

func distributionSheet(props []model.Property) fetcher.Sheet {
	counts := make(map[string]int)
	names := make(map[string]string)
	for i := range props {
		counts[props[i].CompositeCode]++
		names[props[i].CompositeCode] = props[i].CompositeName
	}
	codes := make([]string, 0, len(counts))
	for c := range counts {
		codes = append(codes, c)
	}
	// Largest buckets first; ties alphabetical so the sheet is stable.
	sort.Slice(codes, func(i, j int) bool {
		if counts[codes[i]] != counts[codes[j]] {
			return counts[codes[i]] > counts[codes[j]]
		}
		return codes[i] < codes[j]
	})
	rows := make([][]string, 0, len(codes))
	for _, c := range codes {
		rows = append(rows, []string{c, names[c], strconv.Itoa(counts[c])})
	}
	return fetcher.Sheet{
		Name:   "Priority_Distribution",
		Header: []string{"Composite Code", "Composite Name", "Count"},
		Rows:   rows,
	}
}
