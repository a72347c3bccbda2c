package news

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"DailyBriefing/internal/platform/httpx"
)

const dartLookbackDays = 7

// DARTClient looks up Korean corporate disclosures on the OpenDART API.
// Without an API key every method returns empty results.
type DARTClient struct {
	APIKey string
	http   *httpx.Client
	logger zerolog.Logger

	mu        sync.Mutex
	corpCodes map[string]string // stock code -> corp code, loaded once
}

// NewDARTClient creates a disclosure client. apiKey may be empty.
func NewDARTClient(apiKey string, http *httpx.Client) *DARTClient {
	return &DARTClient{
		APIKey: apiKey,
		http:   http,
		logger: log.With().Str("component", "dart").Logger(),
	}
}

// corpCodeXML mirrors the CORPCODE.xml entries inside the zipped corp-code
// dump OpenDART serves.
type corpCodeXML struct {
	List []struct {
		CorpCode  string `xml:"corp_code"`
		StockCode string `xml:"stock_code"`
	} `xml:"list"`
}

func (c *DARTClient) loadCorpCodes(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.corpCodes != nil {
		return nil
	}

	u := fmt.Sprintf("https://opendart.fss.or.kr/api/corpCode.xml?crtfc_key=%s", c.APIKey)
	body, err := c.http.Get(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("dart corp codes: %w", err)
	}

	z, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return fmt.Errorf("dart corp codes: open zip: %w", err)
	}
	f, err := z.Open("CORPCODE.xml")
	if err != nil {
		return fmt.Errorf("dart corp codes: missing CORPCODE.xml: %w", err)
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("dart corp codes: read xml: %w", err)
	}

	var doc corpCodeXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("dart corp codes: decode xml: %w", err)
	}

	codes := make(map[string]string, len(doc.List))
	for _, item := range doc.List {
		sc := strings.TrimSpace(item.StockCode)
		if sc != "" {
			codes[sc] = strings.TrimSpace(item.CorpCode)
		}
	}
	c.corpCodes = codes
	c.logger.Info().Int("count", len(codes)).Msg("dart corp codes loaded")
	return nil
}

// CorpCode resolves the DART corp code for a stock code, "" when unknown.
func (c *DARTClient) CorpCode(ctx context.Context, stockCode string) string {
	if c.APIKey == "" {
		return ""
	}
	if err := c.loadCorpCodes(ctx); err != nil {
		c.logger.Warn().Err(err).Msg("corp code lookup unavailable")
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.corpCodes[stockCode]
}

// RecentDisclosures returns up to limit disclosures for a company over the
// last week, as headlines with DART viewer links.
func (c *DARTClient) RecentDisclosures(ctx context.Context, stockCode, corpName string, limit int) []Headline {
	corpCode := c.CorpCode(ctx, stockCode)
	if corpCode == "" {
		return nil
	}

	end := time.Now()
	start := end.AddDate(0, 0, -dartLookbackDays)
	u := fmt.Sprintf(
		"https://opendart.fss.or.kr/api/list.json?crtfc_key=%s&corp_code=%s&bgn_de=%s&end_de=%s&page_no=1&page_count=10",
		c.APIKey, corpCode, start.Format("20060102"), end.Format("20060102"))

	var resp struct {
		List []struct {
			ReportName string `json:"report_nm"`
			ReceiptNo  string `json:"rcept_no"`
		} `json:"list"`
	}
	if err := c.http.GetJSON(ctx, u, nil, &resp); err != nil {
		c.logger.Warn().Err(err).Str("code", stockCode).Msg("disclosure list failed")
		return nil
	}

	var out []Headline
	for _, item := range resp.List {
		if len(out) >= limit {
			break
		}
		title := strings.TrimSpace(item.ReportName)
		rcpNo := strings.TrimSpace(item.ReceiptNo)
		if title == "" || rcpNo == "" {
			continue
		}
		out = append(out, Headline{
			Source: "DART",
			Title:  fmt.Sprintf("%s: %s", corpName, title),
			Link:   fmt.Sprintf("https://dart.fss.or.kr/dsaf001/main.do?rcpNo=%s", rcpNo),
		})
	}
	return out
}
