package model

// Instrument is one tradable symbol in the scan universe. Symbol is
// the stable identity used against the data source; Name is for
// presentation only.
type Instrument struct {
	Name   string `yaml:"name" json:"pair"`
	Symbol string `yaml:"symbol" json:"symbol"`
}

// TimeframeSpec describes one sampling resolution of the scan.
// TrendWindow is the EMA period used for trend classification; coarser
// timeframes carry longer windows because more history is available
// within the lookback.
type TimeframeSpec struct {
	Name        string `yaml:"name" json:"name"`
	Interval    string `yaml:"interval" json:"interval"`
	TrendWindow int    `yaml:"trend_window" json:"trend_window"`
	Lookback    int    `yaml:"lookback" json:"lookback"`
}
