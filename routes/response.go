package routes

import (
	"net/http"

	"github.com/go-chi/render"
)

// Response is the JSON envelope of every API endpoint except /api/figure
type Response struct {
	Status int         `json:"status"`
	Msg    string      `json:"msg"`
	Data   interface{} `json:"data,omitempty"`
}

func writeOK(w http.ResponseWriter, r *http.Request, data interface{}) {
	render.JSON(w, r, Response{Status: 0, Msg: "ok", Data: data})
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	render.Status(r, code)
	render.JSON(w, r, Response{Status: code, Msg: msg})
}
