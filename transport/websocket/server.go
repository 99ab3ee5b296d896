package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/bot"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/ultimate-tictactoe-backend/internal/tictactoe"
)

type matchUseCase interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetOrCreateMatch(ctx context.Context, playerID, matchType string, rules tictactoe.Rules, strength bot.Strength) (*entity.Match, error)
	JoinMatch(ctx context.Context, matchID, playerID string) (*entity.Match, error)
	GetMatchByPlayerID(ctx context.Context, playerID string) (*entity.Match, error)

	MakeTurn(ctx context.Context, playerID string, subBoard, cell int) (*entity.Match, error)
	BotTurn(ctx context.Context, matchID string) (*entity.Match, error)
	PassTurn(ctx context.Context, matchID string, turn int) (*entity.Match, error)
	SetRules(ctx context.Context, playerID string, rules tictactoe.Rules) (*entity.Match, error)
	ResetMatch(ctx context.Context, playerID string, rules tictactoe.Rules) (*entity.Match, error)
	LeaveMatch(ctx context.Context, playerID string) (*entity.Match, error)
}

type handlerFunc func(ctx context.Context, message *Message, conn *connection) error

// Options tune the pacing of a match.
type Options struct {
	DefaultStrength bot.Strength
	// ThinkingDelay is the pause before a bot move is applied.
	ThinkingDelay time.Duration
	// TurnTimeout passes the turn of a player who did not move in time. Zero disables it.
	TurnTimeout time.Duration
}

type Server struct {
	logger   *slog.Logger
	matches  matchUseCase
	options  Options
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc

	connectionsMutex sync.RWMutex
	connections      map[string]*connection

	timersMutex sync.Mutex
	timers      map[string]*time.Timer
}

func New(logger *slog.Logger, matches matchUseCase, options Options) *Server {
	server := &Server{
		logger:  logger.With("component", "websocket"),
		matches: matches,
		options: options,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers:    make(map[string]handlerFunc),
		connections: make(map[string]*connection),
		timers:      make(map[string]*time.Timer),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionNew] = server.handleNewMatch
	server.handlers[actionJoin] = server.handleJoinMatch
	server.handlers[actionTurn] = server.handleMatchTurn
	server.handlers[actionRules] = server.handleMatchRules
	server.handlers[actionReset] = server.handleMatchReset
	server.handlers[actionLeave] = server.handleMatchLeave

	return server
}

// Handler - routes /ws to the socket loop. ctx outlives single connections and drives timers.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		that.stopTimers()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	socket, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer socket.Close()

	conn := newConnection(socket)

	log.Info("WebSocket connection established", "remote_addr", req.RemoteAddr)

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Info("connection closed", "reason", err)
	}

	that.handleDisconnect(conn)
}

// handleMessages - processes messages from the client until the socket fails.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.socket.ReadJSON(&message); err != nil {
			if !isDecodeError(err) {
				return fmt.Errorf("failed to read message: %w", err)
			}

			log.Warn("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err := conn.sendError(message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err := handler(ctx, &message, conn); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) register(playerID string, conn *connection) {
	that.connectionsMutex.Lock()
	that.connections[playerID] = conn
	that.connectionsMutex.Unlock()
}

func (that *Server) connection(playerID string) (*connection, bool) {
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	conn, ok := that.connections[playerID]
	return conn, ok
}

func (that *Server) handleDisconnect(conn *connection) {
	log := that.logger.With("method", "handleDisconnect")

	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	for playerID, connection := range that.connections {
		if connection == conn {
			delete(that.connections, playerID)
			log.Info("player disconnected", "player_id", playerID)
		}
	}
}

// broadcast - sends the match to every human seated in it, each with its own player record.
func (that *Server) broadcast(action string, match *entity.Match) {
	log := that.logger.With("method", "broadcast", "match_id", match.ID, "action", action)

	masked := maskMatch(match)

	for _, player := range match.Players {
		if player.IsBot {
			continue
		}

		conn, ok := that.connection(player.ID)
		if !ok {
			log.Warn("connection not found for player", "player_id", player.ID)
			continue
		}

		if err := conn.sendMessage(action, Payload{Player: player, Match: masked}); err != nil {
			log.Error("failed to send match update", "player_id", player.ID, "error", err)
		}
	}
}
