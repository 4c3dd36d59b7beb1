package booking

import "context"

// InitResult is what the gateway hands back when a hosted transaction is
// initialized.
type InitResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// Transaction is the gateway's view of a payment attempt. Amount is in the
// gateway's minor-unit representation (kobo for NGN).
type Transaction struct {
	Status  string
	Amount  int64
	Channel string
}

// Successful reports whether the gateway considers the charge complete.
func (t Transaction) Successful() bool {
	return t.Status == "success"
}

// Gateway is the payment provider collaborator. Implementations must bound
// each call with the context deadline.
type Gateway interface {
	Initialize(
		ctx context.Context,
		email string,
		amountMinor int64,
		reference string,
		metadata map[string]string,
	) (*InitResult, error)

	Verify(
		ctx context.Context,
		reference string,
	) (*Transaction, error)
}
