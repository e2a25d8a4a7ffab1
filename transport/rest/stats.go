package rest

import (
	"encoding/json"
	"net/http"
)

type roomCounter interface {
	ActiveRooms() int
}

type StatsHandler interface {
	StatsHandler(w http.ResponseWriter, _ *http.Request)
}

type statsHandler struct {
	rooms roomCounter
}

func NewStatsHandler(rooms roomCounter) StatsHandler {
	return &statsHandler{
		rooms: rooms,
	}
}

type statsResponse struct {
	ActiveRooms int `json:"active_rooms"`
}

func (that *statsHandler) StatsHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(statsResponse{ActiveRooms: that.rooms.ActiveRooms()}); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
