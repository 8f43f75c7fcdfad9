package server

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/panjf2000/ants"

	"track-svr/internal/codec"
	"track-svr/internal/observability"
	"track-svr/internal/utilities"
)

// Dispatch recibe el payload de un frame ya validado.
type Dispatch func(ctx context.Context, source string, payload []byte) error

type Options struct {
	Workers       int
	MaxFrameBytes int
	RawLogDir     string
}

type TcpServer struct {
	dispatch Dispatch
	opts     Options
	pool     *ants.Pool
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	ln     net.Listener
	conns  map[net.Conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

func New(dispatch Dispatch, opts Options, lg *slog.Logger) (*TcpServer, error) {
	pool, err := ants.NewPool(opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("worker pool: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &TcpServer{
		dispatch: dispatch,
		opts:     opts,
		pool:     pool,
		logger:   lg.With("component", "tcp"),
		ctx:      ctx,
		cancel:   cancel,
		conns:    make(map[net.Conn]struct{}),
	}, nil
}

func (srv *TcpServer) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("error starting TCP server: %w", err)
	}
	return srv.Serve(ln)
}

// Serve acepta conexiones hasta que se llama Close.
func (srv *TcpServer) Serve(ln net.Listener) error {
	srv.mu.Lock()
	if srv.closed {
		srv.mu.Unlock()
		_ = ln.Close()
		return net.ErrClosed
	}
	srv.ln = ln
	srv.mu.Unlock()

	srv.logger.Info("TCP server listening", "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if srv.isClosed() {
				return nil
			}
			srv.logger.Error("accept error", "err", err)
			time.Sleep(50 * time.Millisecond)
			continue
		}
		observability.TCPConnections.Inc()
		if !srv.track(conn, true) {
			_ = conn.Close()
			continue
		}
		srv.wg.Add(1)
		go func(c net.Conn) {
			defer srv.wg.Done()
			defer srv.track(c, false)
			srv.HandleConnection(c)
		}(conn)
	}
}

func (srv *TcpServer) Close() error {
	srv.mu.Lock()
	srv.closed = true
	ln := srv.ln
	for c := range srv.conns {
		_ = c.Close()
	}
	srv.mu.Unlock()

	srv.cancel()
	var err error
	if ln != nil {
		err = ln.Close()
	}
	srv.wg.Wait()
	srv.pool.Release()
	return err
}

func (srv *TcpServer) isClosed() bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.closed
}

func (srv *TcpServer) track(c net.Conn, add bool) bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if add {
		if srv.closed {
			return false
		}
		srv.conns[c] = struct{}{}
		return true
	}
	delete(srv.conns, c)
	return true
}

func (srv *TcpServer) HandleConnection(conn net.Conn) {
	defer conn.Close()

	source := conn.RemoteAddr().String()
	srv.logger.Info("client connected", "remote", source)
	defer srv.logger.Info("client disconnected", "remote", source)

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
		_ = tcpConn.SetKeepAlive(true)
		_ = tcpConn.SetKeepAlivePeriod(60 * time.Second)
	}

	r := bufio.NewReader(conn)
	for {
		data, err := ReadFrame(r, srv.opts.MaxFrameBytes)
		if err != nil {
			if errors.Is(err, ErrFrameTooLarge) {
				srv.logger.Warn("frame too large, closing", "remote", source, "max", srv.opts.MaxFrameBytes)
				return
			}
			if errors.Is(err, io.EOF) || srv.isClosed() {
				return
			}
			srv.logger.Warn("read error", "remote", source, "err", err)
			return
		}
		observability.FramesRecv.Inc()

		if srv.opts.RawLogDir != "" {
			utilities.CreateLog(srv.opts.RawLogDir, "ALLTRACKINGS", hex.EncodeToString(data))
		}

		payload, err := codec.OpenFrame(data)
		if err != nil {
			observability.FrameCRCErrors.Inc()
			srv.logger.Warn("bad frame", "remote", source, "err", err)
			continue
		}

		srv.wg.Add(1)
		err = srv.pool.Submit(func() {
			defer srv.wg.Done()
			if err := srv.dispatch(srv.ctx, source, payload); err != nil {
				srv.logger.Warn("dispatch failed", "remote", source, "err", err)
			}
		})
		if err != nil {
			srv.wg.Done()
			srv.logger.Error("worker pool submit failed", "err", err)
			return
		}
	}
}
