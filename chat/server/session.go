package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"

	"github.com/ryuvi/carchat/chat/dialogue"
	"github.com/ryuvi/carchat/chat/wire"
	"github.com/ryuvi/carchat/core/logger"
)

const writeTimeout = 5 * time.Second

// Session binds one websocket connection to one dialogue conversation. The
// transport is lockstep: the client sends a request and waits for the reply
// before sending the next one, and the session mirrors that discipline.
type Session struct {
	conn         *websocket.Conn
	conv         *dialogue.Conversation
	pollInterval time.Duration
}

// NewSession wraps an accepted connection with its own conversation. The
// conversation is created per connection and never shared.
func NewSession(conn *websocket.Conn, conv *dialogue.Conversation, pollInterval time.Duration) *Session {
	return &Session{conn: conn, conv: conv, pollInterval: pollInterval}
}

// Run drives the request/reply loop until the connection closes or ctx is
// cancelled. Blocking reads are confined to a pump goroutine feeding an
// inbox channel; the loop itself only polls, so a shutdown signal is
// observed within one poll interval even while idle. An in-flight reply is
// always finished before the socket is released.
func (s *Session) Run(ctx context.Context) error {
	inbox := make(chan wire.Request)
	readErr := make(chan error, 1)

	pumpCtx, cancelPump := context.WithCancel(ctx)
	defer cancelPump()
	go s.readPump(pumpCtx, inbox, readErr)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.conn.Close(websocket.StatusGoingAway, "server shutting down")
			return ctx.Err()

		case <-ticker.C:
			// No pending request; try again.

		case err := <-readErr:
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("session receive: %w", err)

		case req := <-inbox:
			if err := s.handle(ctx, req); err != nil {
				return err
			}
		}
	}
}

func (s *Session) readPump(ctx context.Context, inbox chan<- wire.Request, readErr chan<- error) {
	for {
		var req wire.Request
		if err := wsjson.Read(ctx, s.conn, &req); err != nil {
			readErr <- err
			return
		}
		select {
		case inbox <- req:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) handle(ctx context.Context, req wire.Request) error {
	rid := uuid.NewString()[:8]
	ctx = logger.WithRID(ctx, rid)
	start := time.Now()

	var reply wire.Reply
	if req.IsReset() {
		s.conv.Reset()
		reply = wire.Reply{Message: "Conversa reiniciada. Vamos começar de novo?", Reset: true}
		logger.LogEvent(ctx, logger.SESS, slog.LevelInfo, "session.reset",
			slog.String("status", "ok"),
		)
	} else {
		from := s.conv.State()
		reply = s.process(ctx, req.Message)
		logger.LogEvent(ctx, logger.SESS, slog.LevelInfo, "session.turn",
			slog.String("status", "ok"),
			slog.String("from_state", string(from)),
			slog.String("to_state", string(s.conv.State())),
			slog.Int("results", len(reply.Results)),
			slog.Bool("complete", reply.Complete),
			slog.Duration("duration", logger.Took(start)),
		)
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	if err := wsjson.Write(writeCtx, s.conn, reply); err != nil {
		logger.LogEvent(ctx, logger.SESS, slog.LevelError, "session.send",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("session send: %w", err)
	}
	return nil
}

// process runs one dialogue turn, converting a panic into an error-styled
// reply so a malformed utterance can never take the session down.
func (s *Session) process(ctx context.Context, text string) (reply wire.Reply) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogEvent(ctx, logger.SESS, slog.LevelError, "session.panic",
				slog.String("status", "fail"),
				slog.String("panic", fmt.Sprint(r)),
			)
			reply = wire.Reply{Message: "Desculpe, algo deu errado. Pode repetir?"}
		}
	}()
	return s.conv.Process(text)
}
