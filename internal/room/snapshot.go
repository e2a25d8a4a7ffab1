package room

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

// Snapshot is the full state of a room at one instant; times are in milliseconds.
type Snapshot struct {
	State          entity.GameState `json:"state"`
	PlayerTurn     entity.Color     `json:"player_turn"`
	WhiteWantsDraw bool             `json:"white_wants_draw"`
	BlackWantsDraw bool             `json:"black_wants_draw"`
	BlackTime      int64            `json:"black_time"`
	WhiteTime      int64            `json:"white_time"`
	WhiteOnline    bool             `json:"white_online"`
	BlackOnline    bool             `json:"black_online"`
	Board          string           `json:"board"`
}

// String - the wire encoding sent after STATUS_OK.
func (that Snapshot) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "STATE=%s", that.State)
	fmt.Fprintf(&sb, " PLAYER_TURN=%s", that.PlayerTurn)
	fmt.Fprintf(&sb, " WHITE_WANTS_DRAW=%s", flag(that.WhiteWantsDraw))
	fmt.Fprintf(&sb, " BLACK_WANTS_DRAW=%s", flag(that.BlackWantsDraw))
	fmt.Fprintf(&sb, " BLACK_TIME=%d", that.BlackTime)
	fmt.Fprintf(&sb, " WHITE_TIME=%d", that.WhiteTime)
	fmt.Fprintf(&sb, " WHITE_ONLINE=%s", flag(that.WhiteOnline))
	fmt.Fprintf(&sb, " BLACK_ONLINE=%s", flag(that.BlackOnline))
	fmt.Fprintf(&sb, " BOARD=%s", that.Board)

	return sb.String()
}

func flag(value bool) string {
	if value {
		return "TRUE"
	}
	return "FALSE"
}
