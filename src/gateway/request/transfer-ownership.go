package request

type TransferOwnership struct {
	NewOwner string `json:"new_owner" binding:"required"`
}
