package cmd

import (
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/itohio/quadled/pkg/relay"
)

var echoWait time.Duration

func init() {
	RootCmd.AddCommand(sendCmd)
	sendCmd.Flags().DurationVar(&echoWait, "echo", 0, "wait this long for a reply and print it")
}

// parseMessage builds a message from a key and its values.
func parseMessage(args []string) (relay.Message, error) {
	msg := relay.Message{Key: args[0]}
	for _, a := range args[1:] {
		v, err := strconv.Atoi(a)
		if err != nil {
			return relay.Message{}, fmt.Errorf("value %q: %w", a, err)
		}
		msg.Values = append(msg.Values, v)
	}
	if len(msg.Values) == 0 {
		return relay.Message{}, fmt.Errorf("%s: no values", msg.Key)
	}
	if _, err := relay.Frame(msg); err != nil {
		return relay.Message{}, err
	}
	return msg, nil
}

func send(args []string) error {
	msg, err := parseMessage(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	link, err := openLink(cfg, msg.Key)
	if err != nil {
		return err
	}
	defer link.Close()

	if err := link.Send(msg); err != nil {
		return err
	}
	log.Infof("sent %q", relay.Encode(msg))

	if echoWait <= 0 {
		return nil
	}
	select {
	case reply := <-link.Messages():
		fmt.Println(reply)
	case <-time.After(echoWait):
		log.Warn("no reply")
	}
	return nil
}

var sendCmd = &cobra.Command{
	Use:     "send <key> <value>...",
	Short:   "send one frame to the board",
	Example: `  relayctl send adc_val 512
  relayctl send "level x" 480 502`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := send(args); err != nil {
			log.Fatal(err)
		}
	},
}
