package strategy

import (
	"fmt"
	"math"
)

// Action is the trade direction a signal requests.
type Action string

const (
	BuyCall Action = "BUY_CALL"
	BuyPut  Action = "BUY_PUT"
	Buy     Action = "BUY"
	Sell    Action = "SELL"
)

// Long reports whether the action opens a long position in the traded
// instrument. Buying a put is long the option even though it is a bearish
// view on the underlying.
func (a Action) Long() bool {
	return a != Sell
}

// Signal is one trade recommendation. Signals are produced fresh each
// evaluation cycle and never persisted beyond one decision.
type Signal struct {
	Symbol string
	Action Action
	Size   int // lot-multiple quantity, always positive
	Price  float64
	Reason string
}

// Strike rounds price to the nearest increment: round(price/inc) * inc.
func Strike(price, increment float64) int {
	return int(math.Round(price/increment) * increment)
}

// OptionSymbol builds a synthetic option symbol by appending the strike and
// a CE/PE suffix to the underlying prefix. The mapping is deterministic.
func OptionSymbol(prefix string, price, increment float64, action Action) string {
	suffix := "CE"
	if action == BuyPut {
		suffix = "PE"
	}
	return fmt.Sprintf("%s%d%s", prefix, Strike(price, increment), suffix)
}
