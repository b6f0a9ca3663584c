// Package cmd implements the relayctl bench commands.
package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/itohio/quadled/pkg/config"
	"github.com/itohio/quadled/pkg/relay"
)

// RootCmd is the main entry point.
var RootCmd = &cobra.Command{
	Use:   "relayctl",
	Short: "bench tools for the quad LED relay link",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

var (
	configFile string
	portName   string
	baudRate   int
	useMock    bool
	verbose    bool
)

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "configuration file")
	RootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "serial port override")
	RootCmd.PersistentFlags().IntVar(&baudRate, "baud", 0, "baud rate override")
	RootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "use a mocked board instead of the serial port")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute is the main entry point for CLI interface
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", configFile, err)
	}
	if portName != "" {
		cfg.Serial.Port = portName
	}
	if baudRate > 0 {
		cfg.Serial.BaudRate = baudRate
	}
	return cfg, nil
}

// openLink connects to the board, or to a mock sending key.
func openLink(cfg *config.Config, key string) (relay.Link, error) {
	var link relay.Link
	if useMock {
		link = relay.NewMock(&cfg.Mock, key)
	} else {
		link = relay.NewSerial(cfg.Serial.Port, cfg.Serial.BaudRate, relay.DefaultBufferSize, cfg.Relay.IdleTicks)
	}
	if err := link.Connect(); err != nil {
		return nil, err
	}
	return link, nil
}
