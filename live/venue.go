package live

import (
	"context"

	"github.com/bhanukaranwal/EdgeX/journal"
	"github.com/bhanukaranwal/EdgeX/logger"
	"github.com/bhanukaranwal/EdgeX/metrics"
)

// OrderRequest is the order shape the execution venue accepts.
type OrderRequest struct {
	Exchange  string
	Symbol    string
	Side      string
	Qty       int
	OrderType string
	Product   string
	Price     float64 // 0 = market
	StopLoss  float64 // 0 = none
}

// OrderAck is the venue's acknowledgement. The core never assumes success;
// it logs the ack and moves on.
type OrderAck struct {
	OrderID string
	Status  string
}

// ExecutionVenue places orders. Implementations wrap a real broker API;
// PaperVenue is the built-in no-risk stand-in.
type ExecutionVenue interface {
	PlaceOrder(ctx context.Context, req OrderRequest) (OrderAck, error)
}

// PaperVenue accepts every order and logs the simulated fill.
type PaperVenue struct {
	Log logger.Logger
}

func NewPaperVenue(log logger.Logger) *PaperVenue {
	return &PaperVenue{Log: logger.OrNop(log)}
}

func (v *PaperVenue) PlaceOrder(ctx context.Context, req OrderRequest) (OrderAck, error) {
	ack := OrderAck{OrderID: journal.NewID(), Status: "FILLED"}
	metrics.OrdersPlaced.WithLabelValues("paper").Inc()
	v.Log.Info("paper_order_filled",
		logger.String("order_id", ack.OrderID),
		logger.String("symbol", req.Symbol),
		logger.String("side", req.Side),
		logger.Int("qty", req.Qty),
		logger.Float64("price", req.Price),
		logger.Float64("stoploss", req.StopLoss),
	)
	return ack, nil
}
