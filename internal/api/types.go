package api

// TopListResponse from GET /data/top/mktcapfull
type TopListResponse struct {
	Response string    `json:"Response,omitempty"`
	Message  string    `json:"Message,omitempty"`
	Data     []TopCoin `json:"Data"`
}

// TopCoin is one entry of the top-by-market-cap listing.
type TopCoin struct {
	CoinInfo CoinInfo `json:"CoinInfo"`
}

// CoinInfo holds the asset identity fields the pipeline cares about.
type CoinInfo struct {
	Name     string `json:"Name"`     // Symbol (e.g. "BTC")
	FullName string `json:"FullName"` // Display name (e.g. "Bitcoin (BTC)")
}

// HistoDayResponse from GET /data/v2/histoday
type HistoDayResponse struct {
	Response string       `json:"Response"`
	Message  string       `json:"Message,omitempty"`
	Data     HistoDayData `json:"Data"`
}

// HistoDayData wraps the inner record array of a histoday response.
type HistoDayData struct {
	Data []HistoDayRecord `json:"Data"`
}

// HistoDayRecord is one daily candle as returned upstream, oldest first.
type HistoDayRecord struct {
	Time       int64   `json:"time"` // Unix seconds, UTC midnight of the day
	Open       float64 `json:"open"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Close      float64 `json:"close"`
	VolumeFrom float64 `json:"volumefrom"`
	VolumeTo   float64 `json:"volumeto"`
}

// PriceMultiFullResponse from GET /data/pricemultifull.
// Successful responses carry only RAW/DISPLAY maps; errors carry Response/Message.
type PriceMultiFullResponse struct {
	Response string                         `json:"Response,omitempty"`
	Message  string                         `json:"Message,omitempty"`
	Raw      map[string]map[string]RawQuote `json:"RAW"`
}

// RawQuote is the current-state quote for one (asset, quote currency) pair.
type RawQuote struct {
	Price         float64 `json:"PRICE"`
	Open24Hour    float64 `json:"OPEN24HOUR"`
	High24Hour    float64 `json:"HIGH24HOUR"`
	Low24Hour     float64 `json:"LOW24HOUR"`
	Volume24Hour  float64 `json:"VOLUME24HOUR"`
	Volume24HrTo  float64 `json:"VOLUME24HOURTO"`
	ChangePct24Hr float64 `json:"CHANGEPCT24HOUR"`
	MarketCap     float64 `json:"MKTCAP"`
	Supply        float64 `json:"SUPPLY"`
}
