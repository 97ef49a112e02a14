package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridgeline-data/propmail/internal/linkage"
	"github.com/ridgeline-data/propmail/internal/model"
	"github.com/ridgeline-data/propmail/internal/region"
	"github.com/ridgeline-data/propmail/internal/registry"
)

var skiptraceCmd = &cobra.Command{
	Use:   "skiptrace",
	Short: "Integrate a skip-trace result file into an enhanced workbook",
	Long:  "Links a skip-trace provider file against the latest (or a given) enhanced workbook, layering ST distress tags and golden contact fields onto matched records.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		regionKey, _ := cmd.Flags().GetString("region")
		file, _ := cmd.Flags().GetString("file")
		enhanced, _ := cmd.Flags().GetString("enhanced")

		mgr, err := region.NewManager(cfg.Regions.Dir)
		if err != nil {
			return err
		}
		rc, err := mgr.Get(regionKey)
		if err != nil {
			return err
		}

		if enhanced == "" {
			enhanced, err = latestEnhanced(cfg.Output.Dir, regionKey)
			if err != nil {
				return err
			}
		}
		zap.L().Info("integrating skip-trace",
			zap.String("region", regionKey),
			zap.String("enhanced", enhanced),
			zap.String("file", file))

		props, err := registry.LoadEnhanced(enhanced)
		if err != nil {
			return err
		}

		recs, skipped, err := registry.LoadSecondary(file, "SkipTrace", model.DatasetSkipTrace)
		if err != nil {
			return err
		}

		engine := linkage.NewEngine(props, rc.FIPS)
		engine.SetWorkers(cfg.Process.Workers)
		stats, err := engine.Link(ctx, linkage.Dataset{
			Name:       filepath.Base(file),
			SourceType: "SkipTrace",
			Kind:       model.DatasetSkipTrace,
			Records:    recs,
		})
		if err != nil {
			return err
		}
		stats.Skipped += skipped

		out := skiptraceOutputPath(enhanced)
		if err := registry.SaveProperties(out, engine.Records()); err != nil {
			return err
		}

		fmt.Printf("Skip-trace: %d/%d matched (%d filtered, %d skipped) -> %s\n",
			stats.Matched, stats.Total, stats.Filtered, stats.Skipped, out)
		return nil
	},
}

// latestEnhanced finds the most recent enhanced workbook for a region by
// the date stamp in its filename.
func latestEnhanced(dir, regionKey string) (string, error) {
	pattern := filepath.Join(dir, regionKey+"_Enhanced_*.xlsx")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", eris.Wrapf(err, "skiptrace: glob %s", pattern)
	}
	if len(matches) == 0 {
		return "", eris.Errorf("skiptrace: no enhanced workbook for region %s in %s", regionKey, dir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// skiptraceOutputPath derives the output name from the input workbook so
// repeated integrations never clobber the monthly output.
func skiptraceOutputPath(enhanced string) string {
	ext := filepath.Ext(enhanced)
	base := strings.TrimSuffix(enhanced, ext)
	return fmt.Sprintf("%s_SkipTraced_%s%s", base, time.Now().Format("2006-01-02"), ext)
}

func init() {
	skiptraceCmd.Flags().String("region", "", "region key under the regions directory (required)")
	skiptraceCmd.Flags().String("file", "", "skip-trace provider result file (required)")
	skiptraceCmd.Flags().String("enhanced", "", "enhanced workbook to update (default: latest for the region)")
	_ = skiptraceCmd.MarkFlagRequired("region")
	_ = skiptraceCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(skiptraceCmd)
}
