package wm

import (
	"context"
	"log/slog"

	"github.com/jezek/xgb"
)

// ReceiveEvents reads X events into eventC until the connection closes or
// ctx is done. X errors are forwarded too; the dispatch loop decides what
// to do with them.
func ReceiveEvents(ctx context.Context, conn *xgb.Conn, eventC chan<- any) {
	for {
		ev, err := conn.WaitForEvent()
		if ev == nil && err == nil {
			slog.Debug("X connection closed")
			close(eventC)
			return
		}

		var msg any
		if err != nil {
			msg = err
		} else {
			msg = ev
		}

		select {
		case eventC <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// execMsg carries a closure from another goroutine into the dispatch
// loop, keeping all engine mutation on the single control thread.
type execMsg struct {
	fn   func(s *Session) error
	done chan error
}
