package socket

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/checkers-backend/internal/apperror"
)

const maxLineLength = 64 * 1024

var (
	errInvalidID   = errors.New("invalid id")
	errLineTooLong = errors.New("command line too long")
)

type handler func(ctx context.Context, args []string) string

// session serves one connection. It is bound to at most one room color at a time.
type session struct {
	logger *slog.Logger
	uGame  uGame
	conn   net.Conn

	roomID  string
	colorID string
	running bool

	unbound map[string]handler
	bound   map[string]handler
}

func newSession(logger *slog.Logger, uGame uGame, conn net.Conn) *session {
	that := &session{
		logger:  logger.With("remote_addr", conn.RemoteAddr().String()),
		uGame:   uGame,
		conn:    conn,
		running: true,
	}

	that.unbound = map[string]handler{
		cmdCreate: that.handleCreate,
		cmdJoin:   that.handleJoin,
	}

	that.bound = map[string]handler{
		cmdGetState:          that.handleGetState,
		cmdMove:              that.handleMove,
		cmdLeave:             that.handleLeave,
		cmdRequestADraw:      that.handleRequestDraw,
		cmdCancelDrawRequest: that.handleCancelDraw,
	}

	return that
}

// Run - reads one line, answers one line, until QUIT, EOF or an I/O error. The room is always left on exit.
func (that *session) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")
	log.Info("connection opened")

	defer that.close(ctx)

	reader := bufio.NewReader(that.conn)
	for that.running {
		var response string

		line, err := readLine(reader)
		switch {
		case errors.Is(err, errLineTooLong):
			log.Warn("command line too long", "limit", maxLineLength)
			response = InvalidSyntax
		case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
			return
		case err != nil:
			log.Error("failed to read command, connection closing", "error", err)
			return
		default:
			response = that.process(ctx, line)
		}

		if _, err = fmt.Fprintln(that.conn, response); err != nil {
			log.Error("failed to write response, connection closing", "error", err)
			return
		}
	}
}

// readLine - next line without its terminator. An over-long line is consumed up to its end and reported
// as errLineTooLong, so the connection stays usable.
func readLine(reader *bufio.Reader) (string, error) {
	var (
		line    []byte
		tooLong bool
	)

	for {
		fragment, isPrefix, err := reader.ReadLine()
		if err != nil {
			return "", err
		}

		if !tooLong {
			line = append(line, fragment...)
			if len(line) > maxLineLength {
				tooLong = true
				line = nil
			}
		}

		if !isPrefix {
			break
		}
	}

	if tooLong {
		return "", errLineTooLong
	}

	return string(line), nil
}

// process - answers a single command line; a panic is reported as SERVER_ERROR.
func (that *session) process(ctx context.Context, line string) (response string) {
	log := that.logger.With("method", "process", "room_id", that.roomID, "color_id", that.colorID)
	log.Debug("command received", "command", line)

	defer func() {
		if r := recover(); r != nil {
			log.Error("unexpected server error", "panic", r, "command", line)
			response = ServerError
		}
	}()

	// QUIT still goes through the normal dispatch below.
	if line == cmdQuit {
		that.running = false
	}

	handlers := that.unbound
	if that.roomID != "" {
		handlers = that.bound
	}

	fragments := strings.Split(line, " ")

	handle, ok := handlers[fragments[0]]
	if !ok {
		return InvalidSyntax
	}

	return handle(ctx, fragments[1:])
}

func (that *session) handleCreate(ctx context.Context, args []string) string {
	if len(args) != 0 {
		return InvalidSyntax
	}

	created, err := that.uGame.CreateRoom(ctx)
	if err != nil {
		that.logger.Error("failed to create room", "error", err)
		return ServerError
	}

	that.bind(created.RoomID, created.PlayerColorID)

	that.logger.Debug("enemy join command", "command",
		fmt.Sprintf("%s %s %s", cmdJoin, created.RoomID, created.EnemyColorID))

	return fmt.Sprintf("%s ROOM_ID=%s PLAYER_COLOR_ID=%s ENEMY_COLOR_ID=%s",
		RoomCreated, created.RoomID, created.PlayerColorID, created.EnemyColorID)
}

func (that *session) handleJoin(ctx context.Context, args []string) string {
	args = trimTrailingEmpty(args)
	if len(args) != 2 {
		return InvalidSyntax
	}

	roomID, err := parseID(args[0])
	if err != nil {
		return InvalidSyntax
	}

	colorID, err := parseID(args[1])
	if err != nil {
		return InvalidSyntax
	}

	if err = that.uGame.JoinRoom(ctx, roomID, colorID); err != nil {
		switch {
		case errors.Is(err, apperror.ErrRoomNotFound),
			errors.Is(err, apperror.ErrUnknownColor),
			errors.Is(err, apperror.ErrColorTaken):
			return RoomNotFound
		default:
			that.logger.Error("failed to join room", "error", err)
			return ServerError
		}
	}

	that.bind(roomID, colorID)

	return RoomJoined
}

func (that *session) handleGetState(ctx context.Context, args []string) string {
	if len(args) != 0 {
		return InvalidSyntax
	}

	snapshot, err := that.uGame.GetSnapshot(ctx, that.roomID)
	if err != nil {
		return that.failure(err, RoomNotFound)
	}

	return StatusOK + " " + snapshot.String()
}

func (that *session) handleMove(ctx context.Context, args []string) string {
	if err := that.uGame.MakeMove(ctx, that.roomID, that.colorID, trimTrailingEmpty(args)); err != nil {
		that.logger.Debug("move rejected", "room_id", that.roomID, "error", err)
		return that.failure(err, MoveFail)
	}

	return MoveOK
}

func (that *session) handleLeave(ctx context.Context, args []string) string {
	if len(args) != 0 {
		return InvalidSyntax
	}

	err := that.uGame.LeaveRoom(ctx, that.roomID, that.colorID)
	that.bind("", "")

	if err != nil {
		return that.failure(err, RoomNotFound)
	}

	return RoomLeft
}

func (that *session) handleRequestDraw(ctx context.Context, args []string) string {
	if len(args) != 0 {
		return InvalidSyntax
	}

	if err := that.uGame.RequestDraw(ctx, that.roomID, that.colorID); err != nil {
		return that.failure(err, DrawFail)
	}

	return DrawOK
}

func (that *session) handleCancelDraw(ctx context.Context, args []string) string {
	if len(args) != 0 {
		return InvalidSyntax
	}

	if err := that.uGame.CancelDraw(ctx, that.roomID, that.colorID); err != nil {
		return that.failure(err, DrawCancelFail)
	}

	return DrawCancelOK
}

// failure - maps an error of a bound command onto the wire; rejected is the command's own failure code.
func (that *session) failure(err error, rejected string) string {
	switch {
	case errors.Is(err, apperror.ErrRoomNotFound):
		return RoomNotFound
	case errors.Is(err, apperror.ErrUnknownColor):
		that.logger.Error("session holds a color id unknown to its room", "room_id", that.roomID, "error", err)
		return ServerError
	default:
		return rejected
	}
}

func (that *session) bind(roomID, colorID string) {
	that.roomID = roomID
	that.colorID = colorID
}

// close - leaves the bound room exactly once and closes the connection.
func (that *session) close(ctx context.Context) {
	log := that.logger.With("method", "close")

	if that.roomID != "" {
		if err := that.uGame.LeaveRoom(context.WithoutCancel(ctx), that.roomID, that.colorID); err != nil {
			log.Error("failed to leave room", "room_id", that.roomID, "error", err)
		}
		that.bind("", "")
	}

	if err := that.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Warn("error during connection close", "error", err)
	}

	log.Info("connection closed")
}

// trimTrailingEmpty - drops the empty fragments left by trailing spaces; JOIN and MOVE tolerate them.
func trimTrailingEmpty(args []string) []string {
	for len(args) > 0 && args[len(args)-1] == "" {
		args = args[:len(args)-1]
	}

	return args
}

// parseID - accepts only the canonical 8-4-4-4-12 form and returns it lower-cased.
func parseID(text string) (string, error) {
	if len(text) != len(uuid.Nil.String()) {
		return "", fmt.Errorf("%w: length %d", errInvalidID, len(text))
	}

	id, err := uuid.Parse(text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidID, err)
	}

	return id.String(), nil
}
