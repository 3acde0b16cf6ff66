package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/lunamints/nftledger/pkg/errorx"
	"github.com/lunamints/nftledger/pkg/xcontext"
)

// WithAppContext seeds a request context with the application values
// (configs, logger, db, snowflake node) held by the base context.
type WithAppContext func(ctx context.Context) context.Context

// Endpoint adapts one domain operation to an HTTP handler. The caller
// identity comes from the X-Sender header; in production that header
// is set by the platform gateway after witness verification.
type Endpoint[Request, Response any] struct {
	Method string
	Path   string
	Handle func(ctx context.Context, req *Request) (*Response, error)
}

func (e *Endpoint[Request, Response]) Register(mux *http.ServeMux, withApp WithAppContext) {
	mux.HandleFunc(e.Path, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != e.Method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := withApp(r.Context())
		if sender := r.Header.Get("X-Sender"); common.IsHexAddress(sender) {
			ctx = xcontext.WithRequestSender(ctx, common.HexToAddress(sender))
		}

		requestID := uuid.NewString()
		xcontext.Logger(ctx).Debugf("Handling %s %s (request %s)", r.Method, r.URL.Path, requestID)

		req, err := e.readRequest(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp, err := e.Handle(ctx, req)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Request %s failed: %v", requestID, err)
			writeError(w, err)
			return
		}

		writeJSON(w, resp)
	})
}

func (e *Endpoint[Request, Response]) readRequest(r *http.Request) (*Request, error) {
	var req Request

	switch e.Method {
	case http.MethodGet, http.MethodDelete:
		values := r.URL.Query()
		params := map[string]any{}
		for key := range values {
			params[key] = values.Get(key)
		}

		b, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(b, &req); err != nil {
			return nil, err
		}

	default:
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}

		if len(b) > 0 {
			if err := json.Unmarshal(b, &req); err != nil {
				return nil, err
			}
		}
	}

	return &req, nil
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	var xerr errorx.Error
	if !errors.As(err, &xerr) {
		xerr = errorx.Unknown
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus(xerr.Code))
	writeJSON(w, errorResponse{Code: int(xerr.Code), Message: xerr.Message})
}

func httpStatus(code errorx.Code) int {
	switch code {
	case errorx.Unauthorized:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.InvalidArgument, errorx.BadRequest:
		return http.StatusBadRequest
	case errorx.PolicyRejected, errorx.AlreadyExists:
		return http.StatusConflict
	case errorx.TransferFailed:
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_, _ = w.Write(b)
}
