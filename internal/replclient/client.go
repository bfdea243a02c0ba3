// Package replclient implements a minimal client for the completion
// engine's wire protocol (component C8), used by completion-repl and
// exercised directly in tests without needing a live server.
package replclient

import (
	"bufio"
	"fmt"
	"net"
	"strings"

	"github.com/shockdb/stringspace/internal/protocol"
)

// Client holds one persistent connection to a completiond instance.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
}

// Dial connects to a completiond instance at addr.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("replclient: dial %s: %w", addr, err)
	}

	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Do sends one operation with the given operands and returns the response
// body, with the trailing EOT stripped.
func (c *Client) Do(op string, operands ...string) (string, error) {
	fields := append([]string{op}, operands...)
	request := strings.Join(fields, string(protocol.RS)) + string(protocol.EOT)

	if _, err := c.conn.Write([]byte(request)); err != nil {
		return "", fmt.Errorf("replclient: write: %w", err)
	}

	raw, err := c.reader.ReadBytes(protocol.EOT)
	if err != nil {
		return "", fmt.Errorf("replclient: read: %w", err)
	}

	return string(raw[:len(raw)-1]), nil
}
