package requests

// ConnectSessionRequest opens a read-only wallet session for an address
type ConnectSessionRequest struct {
	Address string `json:"address" binding:"required"`
}
