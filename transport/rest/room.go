package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

const maxBodySize = 8 * 1024

const (
	actionGet       = "get"
	actionCreate    = "create"
	actionJoin      = "join"
	actionMove      = "move"
	actionNextRound = "next-round"
	actionLeave     = "leave"
)

var (
	errRoomCodeRequired = errors.New("roomCode is required")
	errInvalidRoomCode  = errors.New("invalid roomCode")
)

type roomUseCase interface {
	Create(ctx context.Context, user *entity.User) (*usecase.RoomView, error)
	Get(ctx context.Context, user *entity.User, code string) (*usecase.RoomView, error)
	Join(ctx context.Context, user *entity.User, code string) (*usecase.RoomView, error)
	Move(ctx context.Context, user *entity.User, code string, index int) (*usecase.RoomView, error)
	NextRound(ctx context.Context, user *entity.User, code string) (*usecase.RoomView, error)
	Leave(ctx context.Context, user *entity.User, code string) (*usecase.RoomView, error)
}

type roomRequest struct {
	Action   string `json:"action"`
	RoomCode string `json:"roomCode"`
	Index    *int   `json:"index"`
}

type roomResponse struct {
	Room *entity.Room `json:"room"`
	Role entity.Role  `json:"role"`
}

type joinResponse struct {
	Room      *entity.Room `json:"room"`
	Role      entity.Role  `json:"role"`
	Spectator bool         `json:"spectator"`
}

type leaveResponse struct {
	Deleted bool         `json:"deleted"`
	Room    *entity.Room `json:"room"`
}

type roomHandler struct {
	logger *slog.Logger
	rooms  roomUseCase
}

func newRoomHandler(logger *slog.Logger, rooms roomUseCase) *roomHandler {
	return &roomHandler{
		logger: logger,
		rooms:  rooms,
	}
}

// ServeHTTP - dispatches on the action query parameter. GET only reads a room; every change is a POST.
func (that *roomHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	action := normalizeAction(r.URL.Query().Get("action"))

	if r.Method == http.MethodGet && action == actionGet {
		code, err := parseRoomCode(r.URL.Query().Get("roomCode"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		view, err := that.rooms.Get(r.Context(), user, code)
		that.respond(w, r, action, err, func() any {
			return roomResponse{Room: view.Room, Role: view.Role}
		})
		return
	}

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var request roomRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if action == "" {
		action = normalizeAction(request.Action)
	}

	if action == actionCreate {
		view, err := that.rooms.Create(r.Context(), user)
		that.respond(w, r, action, err, func() any {
			return roomResponse{Room: view.Room, Role: entity.RoleX}
		})
		return
	}

	code, err := parseRoomCode(request.RoomCode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch action {
	case actionJoin:
		view, err := that.rooms.Join(r.Context(), user, code)
		that.respond(w, r, action, err, func() any {
			return joinResponse{Room: view.Room, Role: view.Role, Spectator: view.Spectator}
		})
	case actionMove:
		if request.Index == nil || !entity.InRange(*request.Index) {
			writeError(w, http.StatusBadRequest, "index must be between 0 and 8")
			return
		}

		view, err := that.rooms.Move(r.Context(), user, code, *request.Index)
		that.respond(w, r, action, err, func() any {
			return roomResponse{Room: view.Room, Role: view.Role}
		})
	case actionNextRound:
		view, err := that.rooms.NextRound(r.Context(), user, code)
		that.respond(w, r, action, err, func() any {
			return roomResponse{Room: view.Room, Role: view.Role}
		})
	case actionLeave:
		view, err := that.rooms.Leave(r.Context(), user, code)
		that.respond(w, r, action, err, func() any {
			return leaveResponse{Deleted: view.Deleted, Room: view.Room}
		})
	default:
		writeError(w, http.StatusBadRequest, "Unknown action")
	}
}

// respond - maps use case errors to statuses; body is only called on success.
func (that *roomHandler) respond(w http.ResponseWriter, r *http.Request, action string, err error, body func() any) {
	log := that.logger.With("method", "respond", "action", action, "request_id", middleware.GetReqID(r.Context()))

	switch {
	case err == nil:
		metrics.RoomActionsTotal.WithLabelValues(action, "ok").Inc()
		writeJSON(w, http.StatusOK, body())
	case errors.Is(err, apperror.ErrRoomNotFound):
		metrics.RoomActionsTotal.WithLabelValues(action, "not_found").Inc()
		writeError(w, http.StatusNotFound, "Room not found")
	case errors.Is(err, apperror.ErrRoomCreateExhausted):
		metrics.RoomActionsTotal.WithLabelValues(action, "exhausted").Inc()
		log.Error("failed to create room", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create room")
	default:
		metrics.RoomActionsTotal.WithLabelValues(action, "error").Inc()
		log.Error("room action failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}

func parseRoomCode(raw string) (string, error) {
	code := pkg.NormalizeRoomCode(raw)
	if code == "" {
		return "", errRoomCodeRequired
	}

	if !pkg.IsValidRoomCode(code) {
		return "", errInvalidRoomCode
	}

	return code, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
