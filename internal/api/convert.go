package api

import (
	"time"

	"github.com/dmarkoski/coinsync/internal/model"
)

// Date returns the record's UTC calendar day.
func (r HistoDayRecord) Date() time.Time {
	return model.DateUTC(time.Unix(r.Time, 0))
}

// ToDayRecord converts an upstream candle to the storage model.
func (r HistoDayRecord) ToDayRecord(symbol string) model.DayRecord {
	return model.DayRecord{
		Symbol:     symbol,
		Date:       r.Date(),
		Open:       r.Open,
		High:       r.High,
		Low:        r.Low,
		Close:      r.Close,
		VolumeFrom: r.VolumeFrom,
		VolumeTo:   r.VolumeTo,
	}
}

// ToSnapshot converts a full quote to a snapshot row for the given day.
func (q RawQuote) ToSnapshot(symbol string, date time.Time) model.Snapshot {
	return model.Snapshot{
		Symbol:       symbol,
		Date:         date,
		LastPrice:    q.Price,
		Open24h:      q.Open24Hour,
		High24h:      q.High24Hour,
		Low24h:       q.Low24Hour,
		Volume24h:    q.Volume24Hour,
		Volume24hTo:  q.Volume24HrTo,
		ChangePct24h: q.ChangePct24Hr,
		MarketCap:    q.MarketCap,
		Supply:       q.Supply,
	}
}
