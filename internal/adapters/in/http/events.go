package http

import (
	"fmt"
	"net/http"
	"time"

	"restaurant/internal/core/application/events"

	"github.com/labstack/echo/v4"
)

// StreamEvents handles GET /api/v1/events - streams committed events as server-sent
// events until the client goes away.
//
// Every message carries the event type as its SSE event name and the JSON envelope as
// data:
//
//	event: order.created
//	data: {"type":"order.created","payload":{...},"occurredAt":"..."}
//
// A subscriber that falls too far behind is disconnected; it is expected to reconnect
// and re-fetch state through the read endpoints.
func (s *Server) StreamEvents(ctx echo.Context) error {
	sub, err := s.events.Subscribe()
	if err != nil {
		return s.writeError(ctx, err)
	}
	defer sub.Close()

	reqCtx := ctx.Request().Context()
	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)
	if _, err = fmt.Fprint(res, "retry: 3000\n\n"); err != nil {
		return nil
	}
	res.Flush()

	s.logger.DebugContext(reqCtx, "Event stream opened", "remote", ctx.RealIP())
	defer s.logger.DebugContext(reqCtx, "Event stream closed", "remote", ctx.RealIP())

	keepAlive := time.NewTicker(s.keepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-reqCtx.Done():
			return nil
		case e, ok := <-sub.Events():
			if !ok {
				return nil
			}
			data, encodeErr := events.Encode(e)
			if encodeErr != nil {
				s.logger.ErrorContext(reqCtx, "Failed to encode event",
					"event_type", string(e.Type), "error", encodeErr)
				continue
			}
			if _, err = fmt.Fprintf(res, "event: %s\ndata: %s\n\n", e.Type, data); err != nil {
				return nil
			}
			res.Flush()
		case <-keepAlive.C:
			if _, err = fmt.Fprint(res, ": keep-alive\n\n"); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
