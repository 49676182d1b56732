package report

type Report struct {
	Run     *RunReport     `json:"run,omitempty"`
	Factory *FactoryReport `json:"factory,omitempty"`
	Gateway *GatewayReport `json:"gateway,omitempty"`
}
