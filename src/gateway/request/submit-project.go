package request

type SubmitProject struct {
	Details string `json:"details" binding:"required"`
}
