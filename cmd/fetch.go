package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ridgeline-data/propmail/internal/fetcher"
	"github.com/ridgeline-data/propmail/internal/region"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download vendor data drops into a region directory",
	Long:  "Mirrors spreadsheet files from the vendor FTP into regions/<key>/, skipping files already present. A URL ending in / mirrors the directory; otherwise the single file is downloaded.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		regionKey, _ := cmd.Flags().GetString("region")
		url, _ := cmd.Flags().GetString("url")

		mgr, err := region.NewManager(cfg.Regions.Dir)
		if err != nil {
			return err
		}
		if _, err := mgr.Get(regionKey); err != nil {
			return err
		}
		destDir := mgr.Dir(regionKey)

		f := fetcher.NewFTPFetcher(fetcher.FTPOptions{
			Timeout:       time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			User:          cfg.Fetch.User,
			Password:      cfg.Fetch.Password,
			RatePerMinute: cfg.Fetch.RatePerMinute,
		})

		if strings.HasSuffix(url, "/") {
			files, err := f.Mirror(ctx, url, destDir)
			if err != nil {
				return err
			}
			fmt.Printf("Downloaded %d file(s) to %s\n", len(files), destDir)
			return nil
		}

		local := destDir + "/" + url[strings.LastIndex(url, "/")+1:]
		n, err := f.DownloadToFile(ctx, url, local)
		if err != nil {
			return err
		}
		fmt.Printf("Downloaded %s (%d bytes)\n", local, n)
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("region", "", "region key under the regions directory (required)")
	fetchCmd.Flags().String("url", "", "ftp:// file or directory URL (required)")
	_ = fetchCmd.MarkFlagRequired("region")
	_ = fetchCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(fetchCmd)
}
