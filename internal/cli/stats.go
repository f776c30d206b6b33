package cli

import (
	"fmt"
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/retouchlab/retouch/internal/analyze"
	"github.com/retouchlab/retouch/internal/codec"
	"github.com/retouchlab/retouch/internal/histogram"
)

var (
	statsPaletteCount int
	statsFullBuckets  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats <input>",
	Short: "Print histogram and palette statistics as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsPaletteCount, "palette", 5, "number of dominant colors")
	statsCmd.Flags().BoolVar(&statsFullBuckets, "buckets", false, "include the full 256-bucket histogram")
	rootCmd.AddCommand(statsCmd)
}

type channelSummary struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
}

type statsReport struct {
	Width     int                    `json:"width"`
	Height    int                    `json:"height"`
	Red       channelSummary         `json:"red"`
	Green     channelSummary         `json:"green"`
	Blue      channelSummary         `json:"blue"`
	Luma      channelSummary         `json:"luma"`
	Palette   []analyze.PaletteEntry `json:"palette"`
	Histogram *histogram.Stats       `json:"histogram,omitempty"`
}

func runStats(_ *cobra.Command, args []string) error {
	buf, err := codec.Load(args[0])
	if err != nil {
		return err
	}

	stats := histogram.Compute(buf)
	report := statsReport{
		Width:   buf.W,
		Height:  buf.H,
		Red:     summarize(stats.R),
		Green:   summarize(stats.G),
		Blue:    summarize(stats.B),
		Luma:    summarize(stats.Luma),
		Palette: analyze.Palette(buf, statsPaletteCount),
	}
	if statsFullBuckets {
		report.Histogram = stats
	}

	data, err := gojson.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

func summarize(counts [histogram.Buckets]int) channelSummary {
	s := channelSummary{Min: -1}
	total, weighted := 0, 0
	for v, n := range counts {
		if n == 0 {
			continue
		}
		if s.Min < 0 {
			s.Min = v
		}
		s.Max = v
		total += n
		weighted += v * n
	}
	if s.Min < 0 {
		s.Min = 0
	}
	if total > 0 {
		s.Mean = float64(weighted) / float64(total)
	}
	return s
}
