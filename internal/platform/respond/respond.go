// Package respond junta los helpers de respuesta que antes estaban duplicados en cada handler.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"petpals/internal/platform/apperr"
)

// HeaderServedFrom marca respuestas servidas desde el mirror.
const HeaderServedFrom = "X-Served-From"

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error traduce err a status + cuerpo. Errores fuera de apperr salen como 500 sin detalle.
func Error(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)

	detail := errorDetail{Kind: "internal", Message: "internal error"}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		detail.Kind = string(ae.Kind)
		detail.Field = ae.Field
		detail.Message = ae.Message
	}
	JSON(w, status, errorBody{Error: detail})
}

// BadRequest para errores de decode previos al servicio.
func BadRequest(w http.ResponseWriter, field, msg string) {
	Error(w, apperr.Validation(field, msg))
}
