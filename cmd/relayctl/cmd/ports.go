package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/itohio/quadled/pkg/relay"
)

func init() {
	RootCmd.AddCommand(portsCmd)
}

func listPorts() error {
	ports, err := relay.Ports()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		log.Info("no serial ports found")
		return nil
	}
	for _, p := range ports {
		if p.Description != "" && p.Description != p.Name {
			fmt.Printf("%s\t%s\n", p.Name, p.Description)
			continue
		}
		fmt.Println(p.Name)
	}
	return nil
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "list serial ports",
	Run: func(cmd *cobra.Command, args []string) {
		if err := listPorts(); err != nil {
			log.Fatal(err)
		}
	},
}
