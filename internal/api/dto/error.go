package dto

type UnresolvedAddressResponse struct {
	Row     int    `json:"row"`
	Address string `json:"address"`
}

type ErrorResponse struct {
	Error      string                      `json:"error"`
	Unresolved []UnresolvedAddressResponse `json:"unresolved,omitempty"`
}
