package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/landchain/titleledger/pkg/errors"
	"github.com/landchain/titleledger/pkg/logging"
)

const timeFormat = time.RFC3339Nano

func (g *Gateway) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		g.logger.ComponentWarn(logging.ComponentGateway, "failed to encode response", zap.Error(err))
	}
}

func (g *Gateway) writeError(w http.ResponseWriter, err error) {
	if errors.GetErrorCode(err) == errors.CodeInternal {
		g.logger.ComponentError(logging.ComponentGateway, "internal error", zap.Error(err))
	}
	errors.WriteHTTPError(w, err)
}
