package gateway

// CreateBillRequest creates a payment bill. Amount is in sen (RM cents).
type CreateBillRequest struct {
	CollectionID string `json:"collection_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Amount       int64  `json:"amount"`
	Description  string `json:"description"`
	CallbackURL  string `json:"callback_url"`
	RedirectURL  string `json:"redirect_url"`
	Reference1   string `json:"reference_1,omitempty"`
}

// Bill is the gateway's bill resource.
type Bill struct {
	ID           string `json:"id"`
	CollectionID string `json:"collection_id"`
	Paid         bool   `json:"paid"`
	State        string `json:"state"`
	Amount       int64  `json:"amount"`
	PaidAmount   int64  `json:"paid_amount"`
	URL          string `json:"url"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Reference1   string `json:"reference_1"`
	PaidAt       string `json:"paid_at"`
}

// CallbackPayload is what the gateway posts to our webhook when a bill's
// state changes. Signature covers the pipe-joined fields.
type CallbackPayload struct {
	BillID     string `form:"id" json:"id"`
	Paid       string `form:"paid" json:"paid"`
	State      string `form:"state" json:"state"`
	Amount     string `form:"amount" json:"amount"`
	PaidAmount string `form:"paid_amount" json:"paid_amount"`
	PaidAt     string `form:"paid_at" json:"paid_at"`
	Signature  string `form:"x_signature" json:"x_signature"`
}
