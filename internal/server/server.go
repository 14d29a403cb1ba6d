package server

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/api/controller"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/api/response"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/api/service"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/game"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/hub"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/hub/types"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/player"
	"ctchen222/Tic-Tac-Toe-Minimax/internal/validator"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("server")

// ErrUntrustedPlayerID is returned for a playerId that is not a guest ID.
// Account player IDs are only accepted through a login token.
var ErrUntrustedPlayerID = errors.New("playerId must be a guest ID; sign in to play as a user")

type Server struct {
	hub             *hub.Hub
	userService     service.UserService
	userController  *controller.UserController
	boardController *controller.BoardController
	webDir          string
	upgrader        websocket.Upgrader
}

func NewServer(h *hub.Hub, userService service.UserService, userController *controller.UserController, boardController *controller.BoardController, webDir string) *Server {
	return &Server{
		hub:             h,
		userService:     userService,
		userController:  userController,
		boardController: boardController,
		webDir:          webDir,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Engine builds the gin router. Paths that match no route are served from
// the web directory.
func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		response.SuccessResponse(c, gin.H{"status": "ok"})
	})
	r.GET("/ws", s.handleWebSocket)

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		users.POST("/register", s.userController.Register)
		users.POST("/login", s.userController.Login)
		users.POST("/guest", s.userController.GuestLogin)

		board := v1.Group("/board")
		board.POST("/evaluate", s.boardController.Evaluate)
		board.POST("/move", s.boardController.Move)
	}

	r.NoRoute(gin.WrapH(http.FileServer(http.Dir(s.webDir))))
	return r
}

// handleWebSocket's only responsibility is to resolve the player, upgrade the
// connection and pass a registration request to the hub. It does not
// distinguish between new and reconnecting players.
func (s *Server) handleWebSocket(c *gin.Context) {
	r := c.Request
	ctx, span := tracer.Start(r.Context(), "server.handleWebSocket", trace.WithAttributes(
		attribute.String("http.url", r.URL.String()),
		attribute.String("http.method", r.Method),
	))
	defer span.End()

	first := c.Query("first")
	if err := validator.GetValidator().Var(first, "omitempty,oneof=player computer random"); err != nil {
		span.SetStatus(codes.Error, "Invalid first mover")
		response.ErrorResponse(c, http.StatusBadRequest, "first must be player, computer or random")
		return
	}

	playerID, err := s.resolvePlayerID(ctx, c)
	if err != nil {
		span.RecordError(err)
		if !errors.Is(err, service.ErrInvalidToken) && !errors.Is(err, ErrUntrustedPlayerID) {
			slog.ErrorContext(ctx, "Failed to resolve player", "error", err)
			span.SetStatus(codes.Error, "Failed to resolve player")
			response.ErrorResponse(c, http.StatusInternalServerError, "failed to resolve player")
			return
		}
		slog.WarnContext(ctx, "Rejected websocket identity", "error", err)
		span.SetStatus(codes.Error, "Invalid identity")
		response.ErrorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}
	span.SetAttributes(attribute.String("player.id", playerID), attribute.String("game.first", first))

	conn, err := s.upgrader.Upgrade(c.Writer, r, nil)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to upgrade connection", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upgrade connection")
		return
	}

	p := player.NewPlayer(playerID, conn)

	// The request context ends with this handler; the hub outlives it.
	req := &types.RegistrationRequest{
		Player: p,
		First:  game.ParseFirstMover(first),
		Ctx:    context.WithoutCancel(ctx),
	}
	select {
	case s.hub.Register() <- req:
	case <-s.hub.Done():
		slog.WarnContext(ctx, "Hub is not running, dropping connection", "player.id", playerID)
		conn.Close()
	case <-ctx.Done():
		conn.Close()
	}
}

// resolvePlayerID prefers the identity in a login token, then a guest ID
// from the playerId query parameter, and otherwise makes up a new guest ID.
func (s *Server) resolvePlayerID(ctx context.Context, c *gin.Context) (string, error) {
	if token := c.Query("token"); token != "" {
		return s.userService.ParseToken(ctx, token)
	}
	if id := c.Query("playerId"); id != "" {
		if err := validator.GetValidator().Var(id, "uuid"); err != nil {
			return "", ErrUntrustedPlayerID
		}
		return id, nil
	}
	return uuid.New().String(), nil
}
