// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package steam

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/ludographus/ludographus/internal/models"
)

// descriptionEntry is the {id, description} shape used by genre and
// category lists in the storefront payload.
type descriptionEntry struct {
	ID          json.Number `json:"id"`
	Description string      `json:"description"`
}

// requirementsBlock tolerates the storefront's two encodings: an object
// with minimum/recommended text, or an empty array when absent.
type requirementsBlock struct {
	Minimum     string `json:"minimum"`
	Recommended string `json:"recommended"`
}

// UnmarshalJSON accepts both the object form and the empty-array form.
func (r *requirementsBlock) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		*r = requirementsBlock{}
		return nil
	}
	type plain requirementsBlock
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = requirementsBlock(p)
	return nil
}

// appDetailsData is the storefront detail payload for one app.
type appDetailsData struct {
	Name        string `json:"name"`
	ReleaseDate struct {
		ComingSoon bool   `json:"coming_soon"`
		Date       string `json:"date"`
	} `json:"release_date"`
	Developers []string           `json:"developers"`
	Publishers []string           `json:"publishers"`
	Genres     []descriptionEntry `json:"genres"`
	Categories []descriptionEntry `json:"categories"`
	Metacritic *struct {
		Score float64 `json:"score"`
	} `json:"metacritic"`
	PriceOverview *struct {
		Currency        string `json:"currency"`
		Initial         int64  `json:"initial"`
		Final           int64  `json:"final"`
		DiscountPercent int    `json:"discount_percent"`
	} `json:"price_overview"`
	SupportedLanguages string            `json:"supported_languages"`
	Platforms          map[string]bool   `json:"platforms"`
	PCRequirements     requirementsBlock `json:"pc_requirements"`
	MacRequirements    requirementsBlock `json:"mac_requirements"`
	LinuxRequirements  requirementsBlock `json:"linux_requirements"`

	ShortDescription    string `json:"short_description"`
	DetailedDescription string `json:"detailed_description"`
	HeaderImage         string `json:"header_image"`
	Background          string `json:"background"`
	Website             string `json:"website"`
	SupportInfo         struct {
		URL   string `json:"url"`
		Email string `json:"email"`
	} `json:"support_info"`
	ControllerSupport string  `json:"controller_support"`
	DLC               []int64 `json:"dlc"`

	// Community and marketplace signals. The storefront only reports these
	// for a subset of apps; nil means the category is skipped entirely.
	WorkshopItemsCount *int64 `json:"workshop_items_count"`
	ForumTopicsCount   *int64 `json:"forum_topics_count"`
	ForumPostsCount    *int64 `json:"forum_posts_count"`
	GroupMembersCount  *int64 `json:"group_members_count"`
	TradingCards       []struct {
		MarketPrice  *float64 `json:"market_price"`
		MarketVolume *int64   `json:"market_volume"`
	} `json:"trading_cards"`
	MarketPrice  *float64 `json:"market_price"`
	MarketVolume *int64   `json:"market_volume"`
	MarketTrend  *string  `json:"market_trend"`
}

// appDetailsEnvelope wraps the per-app success flag.
type appDetailsEnvelope struct {
	Success bool           `json:"success"`
	Data    appDetailsData `json:"data"`
}

// GetAppDetails fetches the storefront detail payload for one app and maps
// it to a GameDetail. An app the storefront does not know (absent entry or
// success=false) maps to a placeholder detail rather than an error, so the
// entity still produces a snapshot from its listing metrics.
func (c *Client) GetAppDetails(ctx context.Context, appID int64) (*models.GameDetail, error) {
	params := url.Values{}
	params.Set("appids", strconv.FormatInt(appID, 10))
	params.Set("key", c.apiKey)
	params.Set("cc", "us")
	params.Set("l", "en")
	reqURL := fmt.Sprintf("%s/api/appdetails?%s", c.storeURL, params.Encode())

	var resp map[string]appDetailsEnvelope
	if err := c.getJSON(ctx, "app_details", reqURL, &resp); err != nil {
		if fe, ok := err.(*FetchError); ok {
			fe.AppID = appID
		}
		return nil, err
	}

	envelope, ok := resp[strconv.FormatInt(appID, 10)]
	if !ok || !envelope.Success {
		return placeholderDetail(appID), nil
	}
	return mapAppDetails(appID, &envelope.Data), nil
}

// placeholderDetail is the explicit empty-result payload for apps the
// storefront does not resolve.
func placeholderDetail(appID int64) *models.GameDetail {
	return &models.GameDetail{
		AppID: appID,
		Name:  "Unknown Game",
	}
}

// mapAppDetails converts the wire payload into the domain detail, including
// the optional price, descriptive, community, marketplace, and
// system-requirement sub-payloads.
func mapAppDetails(appID int64, data *appDetailsData) *models.GameDetail {
	detail := &models.GameDetail{
		AppID:       appID,
		Name:        data.Name,
		ReleaseDate: data.ReleaseDate.Date,
		Developers:  data.Developers,
		Publishers:  data.Publishers,
		Genres:      descriptions(data.Genres),
		Categories:  descriptions(data.Categories),
		Languages:   models.SplitList(data.SupportedLanguages),
	}
	if detail.Name == "" {
		detail.Name = "Unknown Game"
	}
	if data.ReleaseDate.ComingSoon && detail.ReleaseDate == "" {
		detail.ReleaseDate = "coming soon"
	}

	if data.Metacritic != nil {
		score := data.Metacritic.Score
		detail.ReviewScore = &score
	}

	if po := data.PriceOverview; po != nil {
		detail.PriceUSD = models.PriceFromCents(po.Final)
		detail.Price = &models.PriceSnapshot{
			InitialCents:    po.Initial,
			FinalCents:      po.Final,
			DiscountPercent: po.DiscountPercent,
			Currency:        po.Currency,
		}
	}

	detail.Extended = &models.ExtendedDetail{
		ShortDescription:    data.ShortDescription,
		DetailedDescription: data.DetailedDescription,
		HeaderImageURL:      data.HeaderImage,
		BackgroundImageURL:  data.Background,
		WebsiteURL:          data.Website,
		SupportURL:          data.SupportInfo.URL,
		SupportEmail:        data.SupportInfo.Email,
		ControllerSupport:   data.ControllerSupport,
		DLCList:             data.DLC,
	}

	detail.Community = mapCommunityStats(data)
	detail.Market = mapMarketData(data)
	detail.Requirements = mapRequirements(data)

	return detail
}

// mapCommunityStats extracts community signals, returning nil when the
// storefront reports none for the app.
func mapCommunityStats(data *appDetailsData) *models.CommunityStats {
	if data.WorkshopItemsCount == nil && data.ForumTopicsCount == nil &&
		data.ForumPostsCount == nil && data.GroupMembersCount == nil && len(data.TradingCards) == 0 {
		return nil
	}
	stats := &models.CommunityStats{
		TradingCards: int64(len(data.TradingCards)),
	}
	if data.WorkshopItemsCount != nil {
		stats.WorkshopItems = *data.WorkshopItemsCount
	}
	if data.ForumTopicsCount != nil {
		stats.ForumTopics = *data.ForumTopicsCount
	}
	if data.ForumPostsCount != nil {
		stats.ForumPosts = *data.ForumPostsCount
	}
	if data.GroupMembersCount != nil {
		stats.GroupMembers = *data.GroupMembersCount
	}
	return stats
}

// mapMarketData extracts marketplace signals: the mean trading-card price,
// the summed card volume, and the app-level item market fields. Returns nil
// when the storefront reports none of them.
func mapMarketData(data *appDetailsData) *models.MarketData {
	var (
		priceSum   float64
		priceCount int64
		volumeSum  int64
		hasVolume  bool
	)
	for _, card := range data.TradingCards {
		if card.MarketPrice != nil {
			priceSum += *card.MarketPrice
			priceCount++
		}
		if card.MarketVolume != nil {
			volumeSum += *card.MarketVolume
			hasVolume = true
		}
	}

	md := &models.MarketData{
		ItemPrice:  data.MarketPrice,
		ItemVolume: data.MarketVolume,
		Trend:      data.MarketTrend,
	}
	if priceCount > 0 {
		avg := priceSum / float64(priceCount)
		md.CardPrice = &avg
	}
	if hasVolume {
		md.CardVolume = &volumeSum
	}

	if md.CardPrice == nil && md.CardVolume == nil && md.ItemPrice == nil &&
		md.ItemVolume == nil && md.Trend == nil {
		return nil
	}
	return md
}

// mapRequirements builds one SystemRequirements entry per supported
// platform that carries requirement text.
func mapRequirements(data *appDetailsData) []models.SystemRequirements {
	blocks := []struct {
		platform string
		block    requirementsBlock
	}{
		{"windows", data.PCRequirements},
		{"mac", data.MacRequirements},
		{"linux", data.LinuxRequirements},
	}

	var out []models.SystemRequirements
	for _, b := range blocks {
		if !data.Platforms[b.platform] {
			continue
		}
		if b.block.Minimum == "" && b.block.Recommended == "" {
			continue
		}
		out = append(out, models.SystemRequirements{
			Platform:    b.platform,
			Minimum:     b.block.Minimum,
			Recommended: b.block.Recommended,
		})
	}
	return out
}

// descriptions projects {id, description} entries to their labels,
// preserving API order.
func descriptions(entries []descriptionEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Description != "" {
			out = append(out, e.Description)
		}
	}
	return out
}

// GetAchievements fetches global achievement completion percentages.
func (c *Client) GetAchievements(ctx context.Context, appID int64) ([]models.Achievement, error) {
	params := url.Values{}
	params.Set("gameid", strconv.FormatInt(appID, 10))
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/ISteamUserStats/GetGlobalAchievementPercentagesForApp/v2/?%s", c.webAPIURL, params.Encode())

	var resp struct {
		AchievementPercentages struct {
			Achievements []struct {
				Name        string  `json:"name"`
				Description string  `json:"description"`
				Percent     float64 `json:"percent"`
			} `json:"achievements"`
		} `json:"achievementpercentages"`
	}
	if err := c.getJSON(ctx, "achievements", reqURL, &resp); err != nil {
		if fe, ok := err.(*FetchError); ok {
			fe.AppID = appID
		}
		return nil, err
	}

	achievements := make([]models.Achievement, 0, len(resp.AchievementPercentages.Achievements))
	for _, a := range resp.AchievementPercentages.Achievements {
		achievements = append(achievements, models.Achievement{
			Name:          a.Name,
			Description:   a.Description,
			GlobalPercent: a.Percent,
		})
	}
	return achievements, nil
}

// GetNews fetches the most recent news items for an app.
func (c *Client) GetNews(ctx context.Context, appID int64) ([]models.NewsItem, error) {
	params := url.Values{}
	params.Set("appid", strconv.FormatInt(appID, 10))
	params.Set("key", c.apiKey)
	params.Set("count", strconv.Itoa(c.newsCount))
	params.Set("maxlength", strconv.Itoa(c.newsMaxLength))
	reqURL := fmt.Sprintf("%s/ISteamNews/GetNewsForApp/v2/?%s", c.webAPIURL, params.Encode())

	var resp struct {
		AppNews struct {
			NewsItems []struct {
				Title    string `json:"title"`
				Contents string `json:"contents"`
				URL      string `json:"url"`
				Date     int64  `json:"date"`
			} `json:"newsitems"`
		} `json:"appnews"`
	}
	if err := c.getJSON(ctx, "news", reqURL, &resp); err != nil {
		if fe, ok := err.(*FetchError); ok {
			fe.AppID = appID
		}
		return nil, err
	}

	items := make([]models.NewsItem, 0, len(resp.AppNews.NewsItems))
	for _, n := range resp.AppNews.NewsItems {
		items = append(items, models.NewsItem{
			Title:       n.Title,
			Contents:    n.Contents,
			URL:         n.URL,
			PublishedAt: time.Unix(n.Date, 0).UTC(),
		})
	}
	return items, nil
}

// GetReviewSummary fetches aggregate user review statistics. Returns nil
// without error when the platform reports no summary for the app.
func (c *Client) GetReviewSummary(ctx context.Context, appID int64) (*models.ReviewSummary, error) {
	params := url.Values{}
	params.Set("json", "1")
	params.Set("language", "all")
	params.Set("purchase_type", "all")
	reqURL := fmt.Sprintf("%s/appreviews/%d?%s", c.storeURL, appID, params.Encode())

	var resp struct {
		Success      int `json:"success"`
		QuerySummary struct {
			ReviewScore     int    `json:"review_score"`
			ReviewScoreDesc string `json:"review_score_desc"`
			TotalPositive   int64  `json:"total_positive"`
			TotalNegative   int64  `json:"total_negative"`
			TotalReviews    int64  `json:"total_reviews"`
		} `json:"query_summary"`
	}
	if err := c.getJSON(ctx, "reviews", reqURL, &resp); err != nil {
		if fe, ok := err.(*FetchError); ok {
			fe.AppID = appID
		}
		return nil, err
	}

	if resp.Success != 1 {
		return nil, nil
	}
	return &models.ReviewSummary{
		Score:         resp.QuerySummary.ReviewScore,
		ScoreDesc:     resp.QuerySummary.ReviewScoreDesc,
		TotalPositive: resp.QuerySummary.TotalPositive,
		TotalNegative: resp.QuerySummary.TotalNegative,
		TotalReviews:  resp.QuerySummary.TotalReviews,
	}, nil
}

// GetPlayerCount fetches the current concurrent player count for an app.
func (c *Client) GetPlayerCount(ctx context.Context, appID int64) (*models.PlayerCount, error) {
	params := url.Values{}
	params.Set("appid", strconv.FormatInt(appID, 10))
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/ISteamUserStats/GetNumberOfCurrentPlayers/v1/?%s", c.webAPIURL, params.Encode())

	var resp struct {
		Response struct {
			PlayerCount int64 `json:"player_count"`
		} `json:"response"`
	}
	if err := c.getJSON(ctx, "player_count", reqURL, &resp); err != nil {
		if fe, ok := err.(*FetchError); ok {
			fe.AppID = appID
		}
		return nil, err
	}
	return &models.PlayerCount{Count: resp.Response.PlayerCount}, nil
}
