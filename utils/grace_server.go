package utils

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	DEFAULT_READ_TIMEOUT     = 60 * time.Second
	DEFAULT_WRITE_TIMEOUT    = DEFAULT_READ_TIMEOUT
	DEFAULT_SHUTDOWN_TIMEOUT = 30 * time.Second
	GRACEFUL_ENVIRON_KEY     = "IS_GRACEFUL"
	GRACEFUL_ENVIRON_VALUE   = GRACEFUL_ENVIRON_KEY + "=1"
	GRACEFUL_LISTENER_FD     = 3
)

// GraceOptions configures GraceServe. Empty cert or key serves plain HTTP.
type GraceOptions struct {
	CertFile string
	KeyFile  string
	// ShutdownTimeout bounds in-flight requests on shutdown; drain hooks get their own window of
	// the same length afterwards.
	ShutdownTimeout time.Duration
	// Drain runs in order once the listener stopped accepting requests, such as flushing queued
	// state writes. It also runs on the parent after a SIGUSR2 hand-over.
	Drain []func(context.Context) error
}

// Server wraps http.Server to support graceful shutdown and restart.
type Server struct {
	*http.Server

	tcpListener     *net.TCPListener
	listener        net.Listener
	isGraceful      bool
	shutdownTimeout time.Duration
	drainHooks      []func(context.Context) error
	signalChan      chan os.Signal
	shutdownChan    chan struct{}
}

// NewServer creates a Server with timeouts and handler.
func NewServer(addr string, handler http.Handler, readTimeout, writeTimeout time.Duration) *Server {
	return &Server{
		Server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		isGraceful:      os.Getenv(GRACEFUL_ENVIRON_KEY) != "",
		shutdownTimeout: DEFAULT_SHUTDOWN_TIMEOUT,
		signalChan:      make(chan os.Signal, 1),
		shutdownChan:    make(chan struct{}),
	}
}

// OnDrain registers work to finish after the HTTP server stopped accepting requests.
func (srv *Server) OnDrain(hook func(context.Context) error) {
	srv.drainHooks = append(srv.drainHooks, hook)
}

// ListenAndServe starts serving on tcp and handles signals.
func (srv *Server) ListenAndServe() error {
	addr := srv.Addr
	if addr == "" {
		addr = ":http"
	}
	if err := srv.listen(addr); err != nil {
		return err
	}
	srv.listener = srv.tcpListener
	return srv.serve()
}

// ListenAndServeTLS starts TLS server with graceful features. The raw TCP listener is what a
// SIGUSR2 restart hands to the child.
func (srv *Server) ListenAndServeTLS(certFile, keyFile string) error {
	addr := srv.Addr
	if addr == "" {
		addr = ":https"
	}

	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if srv.TLSConfig != nil {
		cfg = srv.TLSConfig.Clone()
	}
	if cfg.NextProtos == nil {
		cfg.NextProtos = []string{"http/1.1"}
	}
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return err
	}
	cfg.Certificates = []tls.Certificate{cert}

	if err := srv.listen(addr); err != nil {
		return err
	}
	srv.listener = tls.NewListener(srv.tcpListener, cfg)
	return srv.serve()
}

func (srv *Server) serve() error {
	go srv.handleSignals()
	err := srv.Server.Serve(srv.listener)
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	// Wait until Shutdown and drain hooks finished
	<-srv.shutdownChan
	return nil
}

// listen binds addr, or adopts the listener inherited from a restarting parent.
func (srv *Server) listen(addr string) error {
	var (
		ln  net.Listener
		err error
	)
	if srv.isGraceful {
		ln, err = net.FileListener(os.NewFile(GRACEFUL_LISTENER_FD, ""))
		if err != nil {
			return fmt.Errorf("net.FileListener error: %w", err)
		}
	} else {
		ln, err = net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("net.Listen error: %w", err)
		}
	}
	tcp, ok := ln.(*net.TCPListener)
	if !ok {
		ln.Close()
		return fmt.Errorf("listener on %s is not tcp", addr)
	}
	srv.tcpListener = tcp
	return nil
}

func (srv *Server) handleSignals() {
	signal.Notify(srv.signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR2)
	defer signal.Stop(srv.signalChan)

	for sig := range srv.signalChan {
		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			Sugar.Infof("received %s, graceful shutting down HTTP server", sig)
			srv.shutdown()
			return
		case syscall.SIGUSR2:
			Sugar.Info("received SIGUSR2, graceful restarting HTTP server")
			pid, err := srv.startNewProcess()
			if err != nil {
				Sugar.Errorf("start new process failed: %v, continue serving", err)
				continue
			}
			Sugar.Infof("start new process succeeded, new pid=%d; closing old HTTP server", pid)
			srv.shutdown()
			return
		}
	}
}

func (srv *Server) shutdown() {
	defer close(srv.shutdownChan)

	ctx, cancel := context.WithTimeout(context.Background(), srv.shutdownTimeout)
	if err := srv.Shutdown(ctx); err != nil {
		Sugar.Errorf("HTTP server shutdown error: %v", err)
	} else {
		Sugar.Info("HTTP server shutdown success")
	}
	cancel()

	for i, hook := range srv.drainHooks {
		ctx, cancel := context.WithTimeout(context.Background(), srv.shutdownTimeout)
		if err := hook(ctx); err != nil {
			Sugar.Errorf("drain hook %d failed: %v", i, err)
		}
		cancel()
	}
}

// startNewProcess re-executes the binary with the listening socket on fd 3.
func (srv *Server) startNewProcess() (int, error) {
	file, err := srv.tcpListener.File()
	if err != nil {
		return 0, fmt.Errorf("get listener file: %w", err)
	}
	defer file.Close()

	envs := make([]string, 0, len(os.Environ())+1)
	for _, e := range os.Environ() {
		if e != GRACEFUL_ENVIRON_VALUE {
			envs = append(envs, e)
		}
	}
	envs = append(envs, GRACEFUL_ENVIRON_VALUE)

	attr := &syscall.ProcAttr{
		Env:   envs,
		Files: []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd(), file.Fd()},
	}
	pid, err := syscall.ForkExec(os.Args[0], os.Args, attr)
	if err != nil {
		return 0, fmt.Errorf("forkexec: %w", err)
	}
	return pid, nil
}

// GraceServe starts an HTTP or HTTPS server that shuts down on SIGINT/SIGTERM and hands its
// socket to a fresh process on SIGUSR2.
func GraceServe(addr string, handler http.Handler, opts GraceOptions) error {
	srv := NewServer(addr, handler, DEFAULT_READ_TIMEOUT, DEFAULT_WRITE_TIMEOUT)
	if opts.ShutdownTimeout > 0 {
		srv.shutdownTimeout = opts.ShutdownTimeout
	}
	for _, hook := range opts.Drain {
		srv.OnDrain(hook)
	}
	if opts.CertFile != "" && opts.KeyFile != "" {
		return srv.ListenAndServeTLS(opts.CertFile, opts.KeyFile)
	}
	return srv.ListenAndServe()
}
