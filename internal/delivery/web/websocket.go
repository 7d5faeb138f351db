package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/yourusername/portfolio-bot/internal/domain/entity"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
	writeWait  = 10 * time.Second
)

const (
	frameSubmit   = "submit"
	frameSnapshot = "snapshot"
	frameError    = "error"
)

type inboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outboundFrame struct {
	Type             string           `json:"type"`
	Messages         []entity.Message `json:"messages,omitempty"`
	AwaitingResponse bool             `json:"awaitingResponse"`
	Error            string           `json:"error,omitempty"`
}

func snapshotFrame(snap entity.Snapshot) outboundFrame {
	return outboundFrame{
		Type:             frameSnapshot,
		Messages:         snap.Messages,
		AwaitingResponse: snap.AwaitingResponse,
	}
}

// handleWebSocket pushes a snapshot on connect and after every change.
// Only this goroutine writes to the connection.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	updates, unsubscribe := h.chat.Subscribe()
	defer unsubscribe()

	ctx := r.Context()
	snap, err := h.chat.Snapshot(ctx)
	if err != nil {
		h.logger.Error("failed to read conversation", zap.Error(err))
		_ = conn.Close()
		return
	}

	errs := make(chan string, 4)
	readerDone := make(chan struct{})
	defer func() {
		_ = conn.Close()
		<-readerDone
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go func() {
		defer close(readerDone)
		for {
			var frame inboundFrame
			if err := conn.ReadJSON(&frame); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Debug("websocket read failed", zap.Error(err))
				}
				return
			}
			conn.SetReadDeadline(time.Now().Add(pongWait))

			if frame.Type != frameSubmit {
				pushError(errs, "unknown frame type "+frame.Type)
				continue
			}
			if _, err := h.chat.Submit(ctx, frame.Text); err != nil {
				_, msg := submitStatus(err)
				pushError(errs, msg)
			}
		}
	}()

	if !h.write(conn, snapshotFrame(snap)) {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if !h.write(conn, snapshotFrame(snap)) {
				return
			}
		case msg := <-errs:
			if !h.write(conn, outboundFrame{Type: frameError, Error: msg}) {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-readerDone:
			return
		}
	}
}

func (h *Handler) write(conn *websocket.Conn, frame outboundFrame) bool {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(frame); err != nil {
		h.logger.Debug("websocket write failed", zap.Error(err))
		return false
	}
	return true
}

func pushError(errs chan<- string, msg string) {
	select {
	case errs <- msg:
	default:
	}
}
