package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"DragonBonus/internal/model"
)

// DragonexFetcher implements Fetcher using the dragonex REST API.
type DragonexFetcher struct {
	BaseURL string
	APIKey  string
	CoinIDs []int
	Client  *http.Client
}

// NewDragonexFetcher creates a new fetcher with optional proxy support.
// When coinIDs is empty every listed coin is queried.
func NewDragonexFetcher(baseURL, apiKey string, coinIDs []int, proxyURL string) *DragonexFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &DragonexFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		CoinIDs: coinIDs,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *DragonexFetcher) Name() string { return "dragonex" }

type coinListData struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	CoinID int     `json:"coin_id"`
	Price  float64 `json:"price,string"`
}

type marketData struct {
	CoinID      int     `json:"coin_id,string"`
	TotalAmount float64 `json:"total_amount,string"`
	ClosePrice  float64 `json:"close_price,string"`
}

// FetchVolumes returns the 24h volume of each coin.
func (f *DragonexFetcher) FetchVolumes(ctx context.Context) ([]model.CoinVolume, error) {
	coins := make(map[int]*model.CoinVolume)
	ids := f.CoinIDs

	if len(ids) == 0 {
		var list []coinListData
		if err := f.get(ctx, f.BaseURL+"/coin/list/", &list); err != nil {
			return nil, fmt.Errorf("list coins: %w", err)
		}
		for _, c := range list {
			ids = append(ids, c.CoinID)
			coins[c.CoinID] = &model.CoinVolume{CoinID: c.CoinID, Name: strings.ToUpper(c.Code), Price: c.Price}
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no coins to query")
	}

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = strconv.Itoa(id)
	}
	q := url.Values{}
	q.Set("coin_ids", strings.Join(strIDs, ","))
	q.Set("time", strconv.FormatInt(time.Now().UnixNano(), 10))

	var markets []marketData
	if err := f.get(ctx, f.BaseURL+"/market/real/?"+q.Encode(), &markets); err != nil {
		return nil, fmt.Errorf("fetch market: %w", err)
	}

	out := make([]model.CoinVolume, 0, len(markets))
	for _, m := range markets {
		c, ok := coins[m.CoinID]
		if !ok {
			c = &model.CoinVolume{CoinID: m.CoinID, Name: fmt.Sprintf("COIN%d", m.CoinID)}
		}
		if m.ClosePrice > 0 {
			c.Price = m.ClosePrice
		}
		// total_amount counts one side of each trade.
		c.Volume = m.TotalAmount * 2
		out = append(out, *c)
	}
	return out, nil
}

// get decodes the data field of a dragonex envelope into dst.
func (f *DragonexFetcher) get(ctx context.Context, endpoint string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if f.APIKey != "" {
		req.Header.Set("Auth", f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}

	var envelope struct {
		OK   bool            `json:"ok"`
		Code int             `json:"code"`
		Msg  string          `json:"msg"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !envelope.OK {
		return fmt.Errorf("api not ok: code %d, msg: %s", envelope.Code, envelope.Msg)
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
