package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/truthdare-go/internal/model"
)

// roomCode reads the {code} path variable. Codes are case-insensitive.
func roomCode(r *http.Request) model.RoomCode {
	return normalizeCode(mux.Vars(r)["code"])
}

// roomID reads the {roomID} path variable
func roomID(r *http.Request) model.RoomID {
	return model.RoomID(mux.Vars(r)["roomID"])
}

func normalizeCode(s string) model.RoomCode {
	return model.RoomCode(strings.ToUpper(strings.TrimSpace(s)))
}
