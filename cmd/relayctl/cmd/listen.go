package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/itohio/quadled/pkg/relay"
)

var (
	listenKey     string
	metricsListen string
)

func init() {
	RootCmd.AddCommand(listenCmd)
	listenCmd.Flags().StringVar(&listenKey, "key", relay.KeyADC, "key the mocked board sends")
	listenCmd.Flags().StringVar(&metricsListen, "metrics", "", "serve prometheus metrics on this address, e.g. :9110")
}

type linkStats interface {
	Stats() (received, dropped uint64)
}

func listen(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	link, err := openLink(cfg, listenKey)
	if err != nil {
		return err
	}
	defer link.Close()

	var metrics *linkMetrics
	if metricsListen != "" {
		metrics = newLinkMetrics()
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.handler())
		srv := &http.Server{Addr: metricsListen, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorf("metrics server: %v", err)
			}
		}()
		defer srv.Close()
		log.Infof("serving metrics on %s", metricsListen)
	}

	stats, _ := link.(linkStats)
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-link.Messages():
			if !ok {
				return errors.New("link closed")
			}
			fmt.Println(msg)
			if metrics == nil {
				continue
			}
			metrics.observe(msg)
			if stats != nil {
				_, dropped := stats.Stats()
				metrics.setDropped(dropped)
			}
		}
	}
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "print every frame received from the board",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := listen(ctx); err != nil {
			log.Fatal(err)
		}
	},
}
