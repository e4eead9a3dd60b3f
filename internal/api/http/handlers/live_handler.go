package handlers

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cse-sg/absence-service/internal/api/dto"
	"github.com/cse-sg/absence-service/internal/domain"
	"github.com/cse-sg/absence-service/internal/service"
	"github.com/cse-sg/absence-service/internal/session"
)

// LiveHandler streams live query results over websockets. Every change to
// the backing collection pushes a fresh full snapshot to the socket.
// Changing dashboard filters is done by reconnecting with new query
// parameters, which releases the old subscription before opening the next.
type LiveHandler struct {
	absences  *service.AbsenceService
	directory *service.DirectoryService
	logger    *zap.Logger
}

// NewLiveHandler constructs handler.
func NewLiveHandler(absences *service.AbsenceService, directory *service.DirectoryService, logger *zap.Logger) *LiveHandler {
	return &LiveHandler{absences: absences, directory: directory, logger: logger}
}

// MyAbsences serves GET /ws/absences/mine.
func (h *LiveHandler) MyAbsences() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		user, ok := principal(conn)
		if !ok {
			_ = conn.Close()
			return
		}
		streamAbsences(h.logger, conn, func(ctx context.Context) (<-chan []*domain.AbsenceRecord, func(), error) {
			return h.absences.MineLive(ctx, user.ID)
		})
	})
}

// TeamAbsences serves GET /ws/absences/team with date_filter and
// team_filter query parameters.
func (h *LiveHandler) TeamAbsences() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		if _, ok := principal(conn); !ok {
			_ = conn.Close()
			return
		}
		filters := service.TeamFilters{
			DateFilter: conn.Query("date_filter", service.DateFilterToday),
			TeamFilter: conn.Query("team_filter", service.TeamFilterAll),
		}
		streamAbsences(h.logger, conn, func(ctx context.Context) (<-chan []*domain.AbsenceRecord, func(), error) {
			return h.absences.TeamLive(ctx, filters)
		})
	})
}

// Staff serves GET /ws/staff, the live directory for the management view.
func (h *LiveHandler) Staff() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		if _, ok := principal(conn); !ok {
			_ = conn.Close()
			return
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch, release, err := h.directory.ListLive(ctx)
		if err != nil {
			h.logger.Warn("staff subscription failed", zap.Error(err))
			_ = conn.Close()
			return
		}
		defer release()
		go discardReads(conn, cancel)

		for {
			select {
			case list, open := <-ch:
				if !open {
					return
				}
				if err := conn.WriteJSON(fiber.Map{"data": dto.StaffRowsFromDomain(list)}); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	})
}

func streamAbsences(logger *zap.Logger, conn *websocket.Conn, subscribe func(context.Context) (<-chan []*domain.AbsenceRecord, func(), error)) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, release, err := subscribe(ctx)
	if err != nil {
		logger.Warn("absence subscription failed", zap.Error(err))
		_ = conn.Close()
		return
	}
	defer release()
	go discardReads(conn, cancel)

	for {
		select {
		case list, open := <-ch:
			if !open {
				return
			}
			if err := conn.WriteJSON(fiber.Map{"data": dto.AbsencesFromDomain(list)}); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// discardReads drains client frames so close handshakes are noticed; the
// first read error cancels the stream.
func discardReads(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// principal reads the authenticated staff record stashed by the auth
// middleware before the upgrade.
func principal(conn *websocket.Conn) (*domain.StaffRecord, bool) {
	val := conn.Locals(session.PrincipalKey)
	if val == nil {
		return nil, false
	}
	staff, ok := val.(*domain.StaffRecord)
	return staff, ok
}
