package replclient_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/shockdb/stringspace/internal/clock"
	"github.com/shockdb/stringspace/internal/protocol"
	"github.com/shockdb/stringspace/internal/replclient"
	"github.com/shockdb/stringspace/internal/server"
	"github.com/shockdb/stringspace/internal/store"
)

func startTestServer(t *testing.T) string {
	t.Helper()

	s := store.New(clock.Fixed(20000))
	if err := s.Insert([]byte("hello"), 1); err != nil {
		t.Fatalf("insert: %v", err)
	}

	d := protocol.NewDispatcher(s, t.TempDir()+"/words.txt", 15, false)
	d.Persist = func() error { return nil }

	srv := server.New(s, d, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() { _ = srv.ListenAndServeOn(ctx, addr) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, dialErr := net.Dial("tcp", addr)
		if dialErr == nil {
			conn.Close()
			return addr
		}

		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("server at %s never came up", addr)

	return ""
}

func TestClient_PrefixRoundTrip(t *testing.T) {
	t.Parallel()

	addr := startTestServer(t)

	c, err := replclient.Dial(addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	resp, err := c.Do("prefix", "hel")
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if resp != "hello\n" {
		t.Fatalf("resp = %q, want %q", resp, "hello\n")
	}
}

func TestClient_DataFile(t *testing.T) {
	t.Parallel()

	addr := startTestServer(t)

	c, err := replclient.Dial(addr)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	resp, err := c.Do("data-file")
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if resp == "" {
		t.Fatal("expected a non-empty data file path")
	}
}
