package ws

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const maxMessageSize = 1 << 20

// HandlerFunc answers one decoded request. Handle is the plain implementation.
type HandlerFunc func(Request) Response

type Server struct {
	logger   *zap.Logger
	handler  HandlerFunc
	upgrader websocket.Upgrader
}

func NewServer(logger *zap.Logger, handler HandlerFunc) *Server {
	return &Server{
		logger:  logger,
		handler: handler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// NewRouter mounts the scoring socket at /v1/score next to a /healthz probe.
func NewRouter(server *Server) *mux.Router {
	router := mux.NewRouter()
	router.Handle("/v1/score", server)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return router
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}
	defer func(conn *websocket.Conn) {
		_ = conn.Close()
	}(conn)

	logger := s.logger.With(zap.String("remote", r.RemoteAddr))
	logger.Info("client connected")
	s.serve(logger, conn)
	logger.Info("client disconnected")
}

func (s *Server) serve(logger *zap.Logger, conn *websocket.Conn) {
	conn.SetReadLimit(maxMessageSize)

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("cannot read data", zap.Error(err))
			}
			return
		}

		var req Request
		if messageType != websocket.BinaryMessage {
			req.Err = fmt.Errorf("%w: expected a binary message", ErrInvalidField)
		} else if req, err = UnmarshalRequest(payload); err != nil {
			req.Err = err
		}

		resp := s.handler(req)
		if resp.Error != "" {
			logger.Warn("rejected request", zap.String("id", resp.ID), zap.String("error", resp.Error))
		} else {
			logger.Debug("scored",
				zap.String("id", resp.ID),
				zap.String("op", resp.Op),
				zap.Int("observations", len(req.Returns)),
				zap.Float64("sharpe_ratio", resp.SharpeRatio))
		}

		data, err := MarshalResponse(resp)
		if err != nil {
			logger.Warn("failed to marshal response", zap.Error(err))
			continue
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			logger.Warn("failed to write to connection", zap.Error(err))
			return
		}
	}
}
