package socket

// Response codes of the line protocol.
const (
	RoomCreated    = "ROOM_CREATED"
	RoomJoined     = "ROOM_JOINED"
	RoomLeft       = "ROOM_LEFT"
	RoomNotFound   = "ROOM_NOT_FOUND"
	StatusOK       = "STATUS_OK"
	MoveOK         = "MOVE_OK"
	MoveFail       = "MOVE_FAIL"
	DrawOK         = "DRAW_OK"
	DrawFail       = "DRAW_FAIL"
	DrawCancelOK   = "DRAW_CANCEL_OK"
	DrawCancelFail = "DRAW_CANCEL_FAIL"
	InvalidSyntax  = "INVALID_SYNTAX"
	ServerError    = "SERVER_ERROR"
)

// Commands of the line protocol.
const (
	cmdCreate            = "CREATE"
	cmdJoin              = "JOIN"
	cmdGetState          = "GET_STATE"
	cmdMove              = "MOVE"
	cmdLeave             = "LEAVE"
	cmdRequestADraw      = "REQUEST_A_DRAW"
	cmdCancelDrawRequest = "CANCEL_DRAW_REQUEST"
	cmdQuit              = "QUIT"
)
