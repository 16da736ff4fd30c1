package services

// CardDetails carries simulated card input; it is passed to the gateway and
// never persisted.
type CardDetails struct {
	Number string
	Expiry string
	CVV    string
}

// Gateway is the external settlement provider. The default implementation is
// a stub that always approves; a real integration plugs in here.
type Gateway interface {
	Charge(method string, card CardDetails, amountCents int64) bool
	Refund(transactionID string, amountCents int64) bool
}

type StubGateway struct{}

func (StubGateway) Charge(method string, card CardDetails, amountCents int64) bool { return true }

func (StubGateway) Refund(transactionID string, amountCents int64) bool { return true }
