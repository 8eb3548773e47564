package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	fundentity "etf_advisor/internal/feature/fund/domain/entity"
	fundusecase "etf_advisor/internal/feature/fund/usecase"
	"etf_advisor/internal/feature/marketdata/domain/entity"
	"etf_advisor/internal/feature/marketdata/usecase"
	"etf_advisor/internal/platform/externalapi/twelvedata/dto"
)

const (
	intradayInterval = "5min"
	intradayBars     = 66
	searchOutputSize = 10
)

// TwelveDataMarket fetches fund prices and metadata from Twelve Data.
type TwelveDataMarket struct {
	cfg    Config
	client *http.Client
}

var (
	_ usecase.HistorySource     = (*TwelveDataMarket)(nil)
	_ usecase.QuoteSource       = (*TwelveDataMarket)(nil)
	_ usecase.IntradaySource    = (*TwelveDataMarket)(nil)
	_ fundusecase.FundDirectory = (*TwelveDataMarket)(nil)
)

func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client}
}

// get calls endpoint with q and decodes the JSON body into out. status is
// the embedded status block of out.
func (t *TwelveDataMarket) get(ctx context.Context, endpoint string, q url.Values, out any, status *dto.Status) error {
	q.Set("apikey", t.cfg.APIKey)
	u := fmt.Sprintf("%s/%s?%s", strings.TrimRight(t.cfg.BaseURL, "/"), endpoint, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	res, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("twelvedata http %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("twelvedata decode %s: %w", endpoint, err)
	}
	if status.Status == "error" {
		return fmt.Errorf("twelvedata: %s", status.Message)
	}
	return nil
}

func (t *TwelveDataMarket) timeSeries(ctx context.Context, code, interval string, outputsize int) (dto.TimeSeriesResponse, error) {
	q := url.Values{}
	q.Set("symbol", code)
	q.Set("interval", interval)
	q.Set("outputsize", strconv.Itoa(outputsize))

	var body dto.TimeSeriesResponse
	err := t.get(ctx, "time_series", q, &body, &body.Status)
	return body, err
}

// FetchHistory returns period's close series, oldest bar first.
func (t *TwelveDataMarket) FetchHistory(ctx context.Context, code string, period entity.Period) (entity.PriceSeries, error) {
	spec := period.Spec()
	body, err := t.timeSeries(ctx, code, spec.Interval, spec.Days)
	if err != nil {
		return entity.PriceSeries{}, err
	}

	n := len(body.Values)
	s := entity.PriceSeries{
		Code:    code,
		Period:  period,
		Dates:   make([]time.Time, n),
		Prices:  make([]float64, n),
		Volumes: make([]float64, n),
	}
	for i, v := range body.Values {
		tm, err := parseDatetime(v.Datetime)
		if err != nil {
			return entity.PriceSeries{}, err
		}
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return entity.PriceSeries{}, fmt.Errorf("parse close %q: %w", v.Close, err)
		}
		vol, err := parseVolume(v.Volume)
		if err != nil {
			return entity.PriceSeries{}, err
		}
		j := n - 1 - i
		s.Dates[j], s.Prices[j], s.Volumes[j] = tm, c, vol
	}
	return s, nil
}

// FetchIntraday returns the latest session's 5-minute bars, oldest first.
func (t *TwelveDataMarket) FetchIntraday(ctx context.Context, code string) (entity.Intraday, error) {
	body, err := t.timeSeries(ctx, code, intradayInterval, intradayBars)
	if err != nil {
		return entity.Intraday{}, err
	}

	out := entity.Intraday{Code: code, Times: []string{}, Prices: []float64{}, Volumes: []float64{}}
	var session string
	for i := len(body.Values) - 1; i >= 0; i-- {
		v := body.Values[i]
		tm, err := parseDatetime(v.Datetime)
		if err != nil {
			return entity.Intraday{}, err
		}
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return entity.Intraday{}, fmt.Errorf("parse close %q: %w", v.Close, err)
		}
		vol, err := parseVolume(v.Volume)
		if err != nil {
			return entity.Intraday{}, err
		}
		day := tm.Format("2006-01-02")
		if day != session {
			session = day
			out.Times, out.Prices, out.Volumes = out.Times[:0], out.Prices[:0], out.Volumes[:0]
		}
		out.Times = append(out.Times, tm.Format("15:04"))
		out.Prices = append(out.Prices, c)
		out.Volumes = append(out.Volumes, vol)
	}
	return out, nil
}

// FetchQuote returns the latest quote for code.
func (t *TwelveDataMarket) FetchQuote(ctx context.Context, code string) (entity.Quote, error) {
	body, err := t.quote(ctx, code)
	if err != nil {
		return entity.Quote{}, err
	}
	price, err := strconv.ParseFloat(body.Close, 64)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("parse close %q: %w", body.Close, err)
	}
	change := 0.0
	if body.PercentChange != "" {
		if change, err = strconv.ParseFloat(body.PercentChange, 64); err != nil {
			return entity.Quote{}, fmt.Errorf("parse percent_change %q: %w", body.PercentChange, err)
		}
	}
	tm := time.Now()
	if body.Timestamp > 0 {
		tm = time.Unix(body.Timestamp, 0)
	}
	return entity.Quote{Code: code, Name: body.Name, Price: price, Change: change, Time: tm}, nil
}

func (t *TwelveDataMarket) quote(ctx context.Context, code string) (dto.QuoteResponse, error) {
	q := url.Values{}
	q.Set("symbol", code)
	var body dto.QuoteResponse
	err := t.get(ctx, "quote", q, &body, &body.Status)
	return body, err
}

// LookupFund returns the listed name of code.
func (t *TwelveDataMarket) LookupFund(ctx context.Context, code string) (fundentity.Fund, error) {
	body, err := t.quote(ctx, code)
	if err != nil {
		return fundentity.Fund{}, err
	}
	return fundentity.Fund{
		Code:     code,
		Name:     body.Name,
		Exchange: body.Exchange,
		Category: "ETF",
		IsActive: true,
	}, nil
}

// SearchFunds returns up to ten instruments matching keyword.
func (t *TwelveDataMarket) SearchFunds(ctx context.Context, keyword string) ([]fundentity.Fund, error) {
	q := url.Values{}
	q.Set("symbol", keyword)
	q.Set("outputsize", strconv.Itoa(searchOutputSize))

	var body dto.SymbolSearchResponse
	if err := t.get(ctx, "symbol_search", q, &body, &body.Status); err != nil {
		return nil, err
	}
	out := make([]fundentity.Fund, 0, len(body.Data))
	for _, d := range body.Data {
		out = append(out, fundentity.Fund{
			Code:     d.Symbol,
			Name:     d.InstrumentName,
			Exchange: d.Exchange,
			Category: "ETF",
			IsActive: true,
		})
	}
	return out, nil
}

func parseDatetime(s string) (time.Time, error) {
	tm, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		tm, err = time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
		}
	}
	return tm, nil
}

// parseVolume treats a missing volume as zero.
func parseVolume(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse volume %q: %w", s, err)
	}
	return v, nil
}
