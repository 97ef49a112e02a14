package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridgeline-data/propmail/internal/classify"
	"github.com/ridgeline-data/propmail/internal/fetcher"
	"github.com/ridgeline-data/propmail/internal/gis"
	"github.com/ridgeline-data/propmail/internal/linkage"
	"github.com/ridgeline-data/propmail/internal/model"
	"github.com/ridgeline-data/propmail/internal/region"
	"github.com/ridgeline-data/propmail/internal/registry"
	"github.com/ridgeline-data/propmail/internal/score"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the full monthly enrichment for a region",
	Long:  "Loads the region's registry export, classifies and scores every record, links all niche and skip-trace files found in the region directory, and writes the enhanced workbook plus a summary report.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		regionKey, _ := cmd.Flags().GetString("region")
		autoClean, _ := cmd.Flags().GetBool("auto-clean-fips")

		mgr, err := region.NewManager(cfg.Regions.Dir)
		if err != nil {
			return err
		}
		rc, err := mgr.Get(regionKey)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		run, err := st.CreateRun(ctx, regionKey, rc.FIPS)
		if err != nil {
			return err
		}

		err = runRegion(ctx, run, rc, mgr.Dir(regionKey), autoClean)
		if err != nil {
			run.Status = model.RunStatusFailed
			run.Error = err.Error()
			if cerr := st.CompleteRun(ctx, run); cerr != nil {
				zap.L().Error("record failed run", zap.Error(cerr))
			}
			return err
		}

		run.Status = model.RunStatusComplete
		if err := st.CompleteRun(ctx, run); err != nil {
			return err
		}

		fmt.Printf("Region %s: %d records (%d inserted, %d enriched) -> %s\n",
			regionKey, run.Records, run.Inserted, run.Updated, run.OutputFile)
		return nil
	},
}

// regionFiles is the classified contents of a region's data directory.
type regionFiles struct {
	main      string
	recent    string
	parcels   string
	niche     []string
	skipTrace []string
}

// discoverFiles sorts the region directory's contents into the pipeline's
// input roles. Output artifacts and backups are ignored.
func discoverFiles(dir string) (regionFiles, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return regionFiles{}, eris.Wrapf(err, "process: read region dir %s", dir)
	}

	var rf regionFiles
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		lower := strings.ToLower(name)
		path := filepath.Join(dir, name)

		if strings.HasSuffix(lower, ".shp") && rf.parcels == "" {
			rf.parcels = path
			continue
		}
		if !fetcher.IsSpreadsheet(name) ||
			strings.HasSuffix(lower, ".backup") ||
			strings.Contains(lower, "enhanced") ||
			strings.Contains(lower, "summary") {
			continue
		}
		switch {
		case region.IsMainFile(name):
			rf.main = path
		case region.IsRecentSales(name):
			rf.recent = path
		case strings.Contains(lower, "skip"):
			rf.skipTrace = append(rf.skipTrace, path)
		default:
			rf.niche = append(rf.niche, path)
		}
	}
	if rf.main == "" {
		return rf, eris.Errorf("process: no main registry export found in %s", dir)
	}
	return rf, nil
}

func runRegion(ctx context.Context, run *model.LinkageRun, rc *region.Config, dir string, autoClean bool) error {
	files, err := discoverFiles(dir)
	if err != nil {
		return err
	}

	if err := checkJurisdiction(files.main, rc.FIPS, autoClean); err != nil {
		return err
	}

	props, _, err := registry.LoadProperties(files.main)
	if err != nil {
		return err
	}
	zap.L().Info("loaded registry",
		zap.String("region", run.Region),
		zap.Int("records", len(props)))

	if files.recent != "" {
		recent, _, err := registry.LoadProperties(files.recent)
		if err != nil {
			return err
		}
		var added int
		props, added = linkage.AppendUnique(props, recent)
		zap.L().Info("appended recent sales",
			zap.Int("candidates", len(recent)),
			zap.Int("added", added))
	}

	var parcels *gis.Index
	if files.parcels != "" {
		parcels, err = gis.LoadParcels(files.parcels)
		if err != nil {
			// Parcel data improves categorization but is not required.
			zap.L().Warn("parcel shapefile unusable, continuing without GIS",
				zap.Error(err))
			parcels = nil
		}
	}

	classifyAndScore(props, rc, parcels)

	engine := linkage.NewEngine(props, rc.FIPS)
	engine.SetWorkers(cfg.Process.Workers)

	run.Datasets = linkDatasets(ctx, engine, files.niche, model.DatasetNiche)
	run.Datasets = append(run.Datasets,
		linkDatasets(ctx, engine, files.skipTrace, model.DatasetSkipTrace)...)
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "process: canceled")
	}

	props = engine.Records()
	for _, ds := range run.Datasets {
		run.Inserted += ds.Inserted
		run.Updated += ds.Matched
	}
	run.Records = len(props)

	stamp := time.Now().Format("2006-01-02")
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return eris.Wrapf(err, "process: create output dir %s", cfg.Output.Dir)
	}
	run.OutputFile = filepath.Join(cfg.Output.Dir, fmt.Sprintf("%s_Enhanced_%s.xlsx", run.Region, stamp))
	if err := registry.SaveProperties(run.OutputFile, props); err != nil {
		return err
	}

	summaryFile := filepath.Join(cfg.Output.Dir, fmt.Sprintf("%s_Summary_%s.xlsx", run.Region, stamp))
	if err := registry.WriteSummary(summaryFile, run, props); err != nil {
		return err
	}
	return nil
}

// checkJurisdiction validates the main file against the region FIPS before
// any matching, optionally rewriting it to drop foreign rows.
func checkJurisdiction(path, fips string, autoClean bool) error {
	rep, err := registry.CheckFIPS(path, fips)
	if err != nil {
		return err
	}
	if rep.Clean() {
		return nil
	}
	if !autoClean {
		zap.L().Warn("main file contains foreign-FIPS rows; they will be carried through unlinked (use --auto-clean-fips to remove)",
			zap.String("file", path),
			zap.Int("foreign", rep.Foreign),
			zap.Int("matching", rep.Matching))
		return nil
	}
	_, err = registry.AutoCleanFIPS(path, fips)
	return err
}

// classifyAndScore runs owner classification, raw-land categorization, and
// base priority scoring over the whole registry, then composes the initial
// priority codes with any main-file distress prefixes.
func classifyAndScore(props []model.Property, rc *region.Config, parcels *gis.Index) {
	scorer := score.NewScorer(rc.Thresholds())
	for i := range props {
		p := &props[i]
		p.Classification = classify.Classify(p.OwnerName, p.Grantor)
		p.Classification.IsOwnerOccupied = classify.OwnerOccupied(p.Address, p.MailingAddress)

		p.Category = model.CategoryDeveloped
		if classify.RawLandByAddress(p.Address) {
			p.Category = model.CategoryRawLand
		} else if parcel := parcels.Lookup(p.APN); parcel != nil && parcel.RawLand() {
			p.Category = model.CategoryRawLand
		}

		p.BasePriority = scorer.Score(p)
		for _, tag := range score.BaseEnhancements(p) {
			if !p.HasTag(tag) {
				p.Tags = append(p.Tags, tag)
			}
			p.SetFlag(tag)
		}
		linkage.Compose(p)
	}
}

// linkDatasets runs one group of files through the engine. A file whose
// schema cannot be loaded fails that dataset only: the error is recorded in
// its stats and the remaining datasets still run.
func linkDatasets(ctx context.Context, engine *linkage.Engine, paths []string, kind model.DatasetKind) []model.DatasetStats {
	var out []model.DatasetStats
	for _, path := range paths {
		name := filepath.Base(path)
		sourceType := region.DetectSourceType(name)
		if kind == model.DatasetSkipTrace {
			sourceType = "SkipTrace"
		}

		recs, skipped, err := registry.LoadSecondary(path, sourceType, kind)
		if err != nil {
			zap.L().Error("dataset unusable, skipping",
				zap.String("dataset", name),
				zap.Error(err))
			out = append(out, model.DatasetStats{
				Dataset:    name,
				SourceType: sourceType,
				Kind:       kind,
				Error:      err.Error(),
			})
			continue
		}

		stats, err := engine.Link(ctx, linkage.Dataset{
			Name:       name,
			SourceType: sourceType,
			Kind:       kind,
			Records:    recs,
		})
		stats.Skipped += skipped
		if err != nil {
			stats.Error = err.Error()
		}
		out = append(out, stats)
		if ctx.Err() != nil {
			return out
		}
	}
	return out
}

func init() {
	processCmd.Flags().String("region", "", "region key under the regions directory (required)")
	processCmd.Flags().Bool("auto-clean-fips", false, "rewrite inputs to drop rows from other jurisdictions (keeps a .backup)")
	_ = processCmd.MarkFlagRequired("region")
	rootCmd.AddCommand(processCmd)
}
