package net

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/peterkuimelis/swipecity/internal/log"
)

// Server hosts one independent game per TCP client.
type Server struct {
	Session SessionConfig
	Addr    string    // listen address, e.g. ":7777"
	Out     io.Writer // status and event log; defaults to stdout
}

func (s *Server) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}

// Run listens on s.Addr and serves clients until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln. It closes ln when ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer ln.Close()
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	fmt.Fprintf(s.out(), "Waiting for players on %s...\n", ln.Addr())

	cfg := s.Session
	if cfg.Logger == nil {
		w := s.out()
		cfg.Logger = func() log.EventLogger { return log.NewTextLogger(w) }
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		fmt.Fprintf(s.out(), "Player connected from %s\n", conn.RemoteAddr())

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			if err := ServeConn(ctx, conn, cfg); err != nil {
				fmt.Fprintf(s.out(), "Session %s ended: %v\n", conn.RemoteAddr(), err)
				return
			}
			fmt.Fprintf(s.out(), "Player %s left\n", conn.RemoteAddr())
		}()
	}
}
