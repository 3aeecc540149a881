package websocket

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/lcdplate/pkg/framework"
)

// DefaultPath is where the websocket endpoint is served.
const DefaultPath = "/ws"

// DefaultWriteTimeout bounds sending one line to one client.
const DefaultWriteTimeout = time.Second

// Server implements LineReadWriter over websocket clients.
// Every text message from any client is a control line (several lines
// may be sent in one message); every written line is broadcast to all
// connected clients.
type Server struct {
	Addr         string
	Path         string
	WriteTimeout time.Duration

	lock   sync.Mutex
	conns  map[*websocket.Conn]struct{}
	lineCh chan string
	doneCh chan struct{}
}

// NewServer creates a Server listening on addr.
func NewServer(addr string) *Server {
	return &Server{
		Addr:         addr,
		Path:         DefaultPath,
		WriteTimeout: DefaultWriteTimeout,
		conns:        make(map[*websocket.Conn]struct{}),
		lineCh:       make(chan string),
		doneCh:       make(chan struct{}),
	}
}

// Name implements Named.
func (s *Server) Name() string {
	return "websocket"
}

// Handler returns the http.Handler serving the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.Path, websocket.Handler(s.serveConn))
	return mux
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	defer close(s.doneCh)
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler()}
	glog.Infof("Websocket listening on %s%s", s.Addr, s.Path)
	return fx.RunWithContextCancel(ctx, func() { srv.Close() }, srv.ListenAndServe)
}

// ReadLine implements LineReader.
// It returns io.EOF after Run returned.
func (s *Server) ReadLine() (string, error) {
	select {
	case line := <-s.lineCh:
		return line, nil
	case <-s.doneCh:
		return "", io.EOF
	}
}

// WriteLine implements LineWriter.
// Clients failing to receive within WriteTimeout are disconnected,
// this never fails.
func (s *Server) WriteLine(line string) error {
	timeout := s.WriteTimeout
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	for conn := range s.conns {
		err := conn.SetWriteDeadline(time.Now().Add(timeout))
		if err == nil {
			err = websocket.Message.Send(conn, line)
		}
		if err != nil {
			glog.Warningf("Websocket %s dropped: %v", conn.Request().RemoteAddr, err)
			delete(s.conns, conn)
			conn.Close()
		}
	}
	return nil
}

func (s *Server) serveConn(conn *websocket.Conn) {
	remote := conn.Request().RemoteAddr
	glog.V(1).Infof("Websocket %s connected", remote)
	s.lock.Lock()
	s.conns[conn] = struct{}{}
	s.lock.Unlock()
	defer func() {
		s.lock.Lock()
		delete(s.conns, conn)
		s.lock.Unlock()
		conn.Close()
		glog.V(1).Infof("Websocket %s disconnected", remote)
	}()

	for {
		var msg string
		if err := websocket.Message.Receive(conn, &msg); err != nil {
			if err != io.EOF {
				glog.Warningf("Websocket %s receive error: %v", remote, err)
			}
			return
		}
		for _, line := range strings.Split(strings.TrimRight(msg, "\r\n"), "\n") {
			select {
			case s.lineCh <- line:
			case <-s.doneCh:
				return
			}
		}
	}
}
