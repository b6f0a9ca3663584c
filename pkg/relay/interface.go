//go:build !tinygo

package relay

// Link is a host side connection to a relaying board (real or mocked).
type Link interface {
	Connect() error
	Close() error
	Messages() <-chan Message
	Send(m Message) error
	IsConnected() bool
}

var (
	_ Link = (*Serial)(nil)
	_ Link = (*Mock)(nil)
)
