package server_test

import (
	"bufio"
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/shockdb/stringspace/internal/clock"
	"github.com/shockdb/stringspace/internal/protocol"
	"github.com/shockdb/stringspace/internal/server"
	"github.com/shockdb/stringspace/internal/store"
)

func TestServer_PrefixRoundTrip(t *testing.T) {
	t.Parallel()

	s := store.New(clock.Fixed(20000))
	if err := s.Insert([]byte("hello"), 1); err != nil {
		t.Fatalf("insert: %v", err)
	}

	dataFile := filepath.Join(t.TempDir(), "words.txt")
	d := protocol.NewDispatcher(s, dataFile, 15, false)

	srv := server.New(s, d, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.ListenAndServeOn(ctx, addr)
	}()

	conn := dialWithRetry(t, addr)
	defer conn.Close()

	request := append([]byte("prefix"+string(protocol.RS)+"hel"), protocol.EOT)
	if _, err := conn.Write(request); err != nil {
		t.Fatalf("write: %v", err)
	}

	reader := bufio.NewReader(conn)

	line, err := reader.ReadBytes(protocol.EOT)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	got := string(line[:len(line)-1])
	if got != "hello\n" {
		t.Fatalf("got %q, want %q", got, "hello\n")
	}
}

func dialWithRetry(t *testing.T, addr string) net.Conn {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)

	for time.Now().Before(deadline) {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			return conn
		}

		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("could not connect to %s", addr)

	return nil
}
