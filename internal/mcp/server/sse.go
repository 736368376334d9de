package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/tmaxmax/go-sse"

	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/errors"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/logging"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/dispatcher"
	"github.com/valerius21/shadcn-ui-mcp-unofficial/internal/mcp/types"
)

// SSEServer serves the MCP surface over an HTTP/event-stream pair: clients
// open an SSE stream on /sse, receive a per-session message endpoint, and
// POST requests there; responses flow back over the stream.
type SSEServer struct {
	dispatcher *dispatcher.Dispatcher
	host       string
	port       int

	mu       sync.Mutex
	sessions map[string]*sseSession

	logger *logging.Logger
}

// sseSession pairs an upgraded event stream with the send queue feeding it.
// The underlying ResponseWriter belongs to the /sse handler goroutine and
// go-sse sessions are not safe for concurrent use, so every write goes
// through sends and is performed by that goroutine alone.
type sseSession struct {
	id     string
	stream *sse.Session
	sends  chan sessionSend
	done   chan struct{}
}

type sessionSend struct {
	msg  *sse.Message
	errs chan error
}

// deliver queues a message for the stream goroutine and waits for the
// write result. Fails once the session has closed.
func (s *sseSession) deliver(msg *sse.Message) error {
	send := sessionSend{msg: msg, errs: make(chan error, 1)}
	select {
	case s.sends <- send:
	case <-s.done:
		return fmt.Errorf("session closed: %s", s.id)
	}
	select {
	case err := <-send.errs:
		return err
	case <-s.done:
		return fmt.Errorf("session closed: %s", s.id)
	}
}

// NewSSEServer creates an SSE transport listening on host:port
func NewSSEServer(d *dispatcher.Dispatcher, host string, port int) *SSEServer {
	return &SSEServer{
		dispatcher: d,
		host:       host,
		port:       port,
		sessions:   make(map[string]*sseSession),
		logger:     logging.ServerLogger,
	}
}

// Start runs the HTTP server until the context is cancelled
func (s *SSEServer) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.host, s.port),
		Handler: s.handler(ctx),
	}

	s.logger.Info("SSE transport started", logging.String("address", httpServer.Addr))

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return errors.ServerWrap(err, "sse", "SSE server failed")
	case <-ctx.Done():
		s.logger.Info("shutting down SSE server")
		return httpServer.Shutdown(context.Background())
	}
}

// handler builds the transport's route table
func (s *SSEServer) handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sse", s.handleSSE(ctx))
	mux.HandleFunc("/message", s.handleMessage)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok"}`)
	})
	return mux
}

// handleSSE upgrades the connection, assigns a session ID, and tells the
// client where to POST its requests. The handler goroutine then owns the
// stream for the life of the connection, draining the session's send queue
// and flushing each event to the wire.
func (s *SSEServer) handleSSE(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stream, err := sse.Upgrade(w, r)
		if err != nil {
			s.logger.Error("failed to upgrade session", logging.Error(err))
			http.Error(w, "failed to upgrade session", http.StatusInternalServerError)
			return
		}

		sess := &sseSession{
			id:     uuid.New().String(),
			stream: stream,
			sends:  make(chan sessionSend, 8),
			done:   make(chan struct{}),
		}

		// Register before the endpoint event goes out: the client may POST
		// the moment it learns the URL.
		s.mu.Lock()
		s.sessions[sess.id] = sess
		s.mu.Unlock()
		s.logger.Info("SSE session opened", logging.String("session", sess.id))

		defer func() {
			s.mu.Lock()
			delete(s.sessions, sess.id)
			s.mu.Unlock()
			close(sess.done)
			s.logger.Info("SSE session closed", logging.String("session", sess.id))
		}()

		endpoint := sse.Message{Type: sse.Type("endpoint")}
		endpoint.AppendData(fmt.Sprintf("/message?sessionId=%s", sess.id))
		if err := s.write(stream, &endpoint); err != nil {
			s.logger.Error("failed to send endpoint event", logging.Error(err))
			return
		}

		for {
			select {
			case send := <-sess.sends:
				err := s.write(stream, send.msg)
				send.errs <- err
				if err != nil {
					s.logger.Error("failed to deliver event",
						logging.String("session", sess.id), logging.Error(err))
					return
				}
			case <-ctx.Done():
				return
			case <-r.Context().Done():
				return
			}
		}
	}
}

// write sends one event and flushes it to the wire. Send alone only
// buffers; without the flush nothing reaches the client.
func (s *SSEServer) write(stream *sse.Session, msg *sse.Message) error {
	if err := stream.Send(msg); err != nil {
		return err
	}
	return stream.Flush()
}

// handleMessage accepts one JSON-RPC request, dispatches it, and delivers
// the response over the session's event stream.
func (s *SSEServer) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessID := r.URL.Query().Get("sessionId")
	s.mu.Lock()
	sess, ok := s.sessions[sessID]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	var request types.Request
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, fmt.Sprintf("parse error: %v", err), http.StatusBadRequest)
		return
	}

	response := s.dispatcher.Dispatch(r.Context(), &request)
	if response == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	data, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("failed to marshal response", logging.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	msg := sse.Message{Type: sse.Type("message")}
	msg.AppendData(string(data))
	if err := sess.deliver(&msg); err != nil {
		s.logger.Error("failed to deliver response", logging.Error(err))
		http.Error(w, "failed to deliver response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
