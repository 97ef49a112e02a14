package registry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ridgeline-data/propmail/internal/fetcher"
	"github.com/ridgeline-data/propmail/internal/linkage"
)

// FIPSReport describes a pre-run jurisdiction check of an input file.
type FIPSReport struct {
	Total    int
	Matching int
	Foreign  int
	Blank    int
}

// Clean reports whether every row with a FIPS value belongs to the region.
func (r FIPSReport) Clean() bool { return r.Foreign == 0 }

// CheckFIPS scans an input file and counts rows against the region FIPS.
// Files without a FIPS column pass trivially.
func CheckFIPS(path, fips string) (FIPSReport, error) {
	t, err := fetcher.ReadTable(path)
	if err != nil {
		return FIPSReport{}, err
	}
	want := linkage.NormalizeFIPS(fips)
	rep := FIPSReport{Total: len(t.Rows)}
	if !t.HasCol(ColFIPS) {
		rep.Blank = rep.Total
		return rep, nil
	}
	for _, row := range t.Rows {
		v, _ := t.Col(row, ColFIPS)
		switch linkage.NormalizeFIPS(v) {
		case "":
			rep.Blank++
		case want:
			rep.Matching++
		default:
			rep.Foreign++
		}
	}
	return rep, nil
}

// AutoCleanFIPS rewrites an input file keeping only rows whose FIPS matches
// the region (blank FIPS rows are kept). The original file is preserved at
// path+".backup" before the rewrite. Returns the number of rows removed.
func AutoCleanFIPS(path, fips string) (int, error) {
	t, err := fetcher.ReadTable(path)
	if err != nil {
		return 0, err
	}
	if !t.HasCol(ColFIPS) {
		return 0, nil
	}
	want := linkage.NormalizeFIPS(fips)

	kept := make([][]string, 0, len(t.Rows))
	removed := 0
	for _, row := range t.Rows {
		v, _ := t.Col(row, ColFIPS)
		got := linkage.NormalizeFIPS(v)
		if got != "" && got != want {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	if removed == 0 {
		return 0, nil
	}

	orig, err := os.ReadFile(path)
	if err != nil {
		return 0, eris.Wrapf(err, "registry: read %s for backup", path)
	}
	if err := os.WriteFile(path+".backup", orig, 0o644); err != nil {
		return 0, eris.Wrapf(err, "registry: write backup for %s", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		err = fetcher.WriteCSV(path, t.Header, kept)
	} else {
		err = fetcher.WriteXLSX(path, "Sheet1", t.Header, kept)
	}
	if err != nil {
		return 0, err
	}
	zap.L().Info("registry: auto-cleaned foreign-FIPS rows",
		zap.String("file", path),
		zap.Int("removed", removed))
	return removed, nil
}
