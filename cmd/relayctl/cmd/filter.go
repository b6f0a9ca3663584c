package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/itohio/quadled/pkg/filter"
)

var filterOpts filter.Options

func init() {
	RootCmd.AddCommand(filterCmd)
	filterCmd.Flags().StringVar(&filterOpts.Kind, "kind", "", "average, median, median3, mean or none (default from config)")
	filterCmd.Flags().Uint16Var(&filterOpts.Weight, "weight", 0, "running average weight")
	filterCmd.Flags().IntVar(&filterOpts.Samples, "samples", 0, "median/mean window")
	filterCmd.Flags().Uint16Var(&filterOpts.Band, "band", 0, "hysteresis band")
	filterCmd.Flags().StringVar(&filterOpts.Even, "even", "", "median of an even window: average, lower or upper")
	filterCmd.Flags().Uint16Var(&filterOpts.Initial, "initial", 0, "initial display value")
}

// filterOptions merges the flags over the configured filter.
func filterOptions(base filter.Options, flags filter.Options) filter.Options {
	if flags.Kind != "" {
		base.Kind = flags.Kind
	}
	if flags.Weight != 0 {
		base.Weight = flags.Weight
	}
	if flags.Samples != 0 {
		base.Samples = flags.Samples
	}
	if flags.Band != 0 {
		base.Band = flags.Band
	}
	if flags.Even != "" {
		base.Even = flags.Even
	}
	if flags.Initial != 0 {
		base.Initial = flags.Initial
	}
	// Recorded samples are already spaced out.
	base.Settle = 0
	return base
}

// runFilter reads whitespace separated raw samples from r and writes one
// filtered value per line to w.
func runFilter(opts filter.Options, r io.Reader, w io.Writer) error {
	f, err := filter.New(opts, nil)
	if err != nil {
		return err
	}

	in := make(chan uint16)
	out := filter.NewReplayStage(f, 0)(in)

	errc := make(chan error, 1)
	go func() {
		defer close(in)
		scanner := bufio.NewScanner(r)
		scanner.Split(bufio.ScanWords)
		for scanner.Scan() {
			v, err := strconv.ParseUint(scanner.Text(), 10, 16)
			if err != nil {
				errc <- fmt.Errorf("sample %q: %w", scanner.Text(), err)
				return
			}
			in <- uint16(v)
		}
		errc <- scanner.Err()
	}()

	bw := bufio.NewWriter(w)
	for v := range out {
		fmt.Fprintln(bw, v)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return <-errc
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "run recorded raw samples from stdin through a display filter",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.Fatal(err)
		}
		if err := runFilter(filterOptions(cfg.Filter, filterOpts), os.Stdin, os.Stdout); err != nil {
			log.Fatal(err)
		}
	},
}
