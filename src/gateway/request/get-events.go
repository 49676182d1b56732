package request

type GetEvents struct {
	Registry string `form:"registry"`
	Kind     string `form:"kind"`
	After    uint64 `form:"after"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}
