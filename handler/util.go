package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// envelope is the response shape every endpoint uses: {"ok": true, "data":…}
// on success, {"ok": false, "error":…} on failure.
type envelope struct {
	OK    bool        `json:"ok"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

func decode(r *http.Request, into interface{}) error {
	rawJson, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(rawJson, into)
}

func respond(ctx context.Context, rw http.ResponseWriter, status int, data interface{}) {
	ctx, span := otel.GetTracerProvider().Tracer("").Start(ctx, "handler.respond")
	span.SetAttributes(attribute.Int("http.status", status))
	defer span.End()

	if status == http.StatusNoContent || data == nil {
		rw.WriteHeader(status)
		return
	}

	rawJson, err := json.Marshal(envelope{OK: true, Data: data})
	if err != nil {
		panic("respond-json-marshal:" + err.Error())
	}

	rw.Header().Add("Content-Type", "application/json")
	rw.WriteHeader(status)
	rw.Write(rawJson)
}

func respondErr(ctx context.Context, rw http.ResponseWriter, status int, err error) {
	ctx, span := otel.GetTracerProvider().Tracer("").Start(ctx, "handler.respondErr")
	span.SetAttributes(attribute.Int("http.status", status))
	defer span.End()

	rawJson, merr := json.Marshal(envelope{OK: false, Error: err.Error()})
	if merr != nil {
		panic("respond-json-marshal:" + merr.Error())
	}

	rw.Header().Add("Content-Type", "application/json")
	rw.WriteHeader(status)
	rw.Write(rawJson)
}
