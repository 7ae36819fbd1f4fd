package renderer

import (
	"net/http"

	"github.com/unrolled/render"
)

var r = render.New(render.Options{
	IndentJSON: true,
})

type errorBody struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	if err := r.JSON(w, status, v); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Error: message})
}
