package request

type SetRoyalty struct {
	Receiver     string `json:"receiver" binding:"required"`
	FeeNumerator uint64 `json:"fee_numerator"`
}
