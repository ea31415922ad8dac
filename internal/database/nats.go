package database

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// ConnectNATS opens a connection to the NATS cluster used for cross-node
// relay events.
func ConnectNATS(url string) (*nats.Conn, error) {
	if url == "" {
		return nil, fmt.Errorf("nats url must not be empty")
	}

	conn, err := nats.Connect(url, nats.Name("hommiefi-api"))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to nats: %w", err)
	}

	return conn, nil
}
