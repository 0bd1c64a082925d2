package httpx

type OrderRequest struct {
	Username string `json:"username"`
}

// DataResponse wraps single-record responses as {"data": ...}.
type DataResponse struct {
	Data any `json:"data"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
