package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Tornado2025-team03/eventpinmap-sub000/internal/services"
)

// Sources reported alongside fill and title results.
const (
	SourceLLM       = "llm"
	SourceHeuristic = "heuristic"
	SourceBase      = "base"
)

const fillSystemPrompt = "あなたは日本語の自由文からイベントの構造化情報を抽出するアシスタントです。" +
	"日付や時間の相対表現（今日/明日/明後日/今週末/曜日）を、与えられた now_iso と tz を使ってISO8601に正規化して下さい。" +
	"時間範囲が不明な場合は開始+2時間で end_iso を補完して下さい。" +
	"出力は必ず厳密なJSONのみ（追加のテキストなし）で、以下のキーを含めてください:{what, where_text, start_iso, end_iso, latitude, longitude}。"

const fillSnippetLimit = 600

// FillResult carries the structured event fields recovered from free text.
type FillResult struct {
	What      *string    `json:"what"`
	WhereText *string    `json:"where_text"`
	StartAt   *time.Time `json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
}

type fillPayload struct {
	What      *string  `json:"what"`
	WhereText *string  `json:"where_text"`
	StartISO  *string  `json:"start_iso"`
	EndISO    *string  `json:"end_iso"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Filler extracts event fields from free text, preferring the model and
// falling back to the on-device-style heuristic parser when the model is
// missing or misbehaves. Fill never fails outright.
type Filler struct {
	client *Client
	logger *slog.Logger
	now    func() time.Time
}

func NewFiller(client *Client, logger *slog.Logger) *Filler {
	return &Filler{client: client, logger: logger, now: time.Now}
}

// Fill parses text against the given timezone. The returned source is
// SourceLLM or SourceHeuristic.
func (f *Filler) Fill(ctx context.Context, text string, tz *time.Location) (*FillResult, string) {
	if tz == nil {
		tz = time.Local
	}
	now := f.now().In(tz)

	if f.client.Configured() {
		res, err := f.fillWithModel(ctx, text, tz, now)
		if err == nil {
			return res, SourceLLM
		}
		f.logger.WarnContext(ctx, "ai fill falling back to heuristics", "err", err)
	}

	return f.fillWithHeuristics(text, now), SourceHeuristic
}

func (f *Filler) fillWithModel(ctx context.Context, text string, tz *time.Location, now time.Time) (*FillResult, error) {
	snippet := text
	if r := []rune(snippet); len(r) > fillSnippetLimit {
		snippet = string(r[:fillSnippetLimit])
	}

	prompt := fmt.Sprintf("%s\n\ntext: %s\ntz: %s\nnow_iso: %s\n出力はJSONのみ。キーは what, where_text, start_iso, end_iso, latitude, longitude。",
		fillSystemPrompt, snippet, tz.String(), now.Format(time.RFC3339))

	raw, err := f.client.generateJSON(ctx, prompt, 0.2)
	if err != nil {
		return nil, err
	}
	var p fillPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	res := &FillResult{
		What:      p.What,
		WhereText: p.WhereText,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
	if p.StartISO != nil {
		if t, err := time.Parse(time.RFC3339, *p.StartISO); err == nil {
			t = t.In(tz)
			res.StartAt = &t
		}
	}
	if p.EndISO != nil {
		if t, err := time.Parse(time.RFC3339, *p.EndISO); err == nil {
			t = t.In(tz)
			res.EndAt = &t
		}
	}
	if res.EndAt == nil && res.StartAt != nil {
		e := res.StartAt.Add(2 * time.Hour)
		res.EndAt = &e
	}
	return res, nil
}

func (f *Filler) fillWithHeuristics(text string, now time.Time) *FillResult {
	parsed := services.ParseFreeForm(text, now)
	res := &FillResult{StartAt: parsed.StartAt, EndAt: parsed.EndAt}
	if parsed.What != "" {
		res.What = &parsed.What
	}
	if parsed.WhereText != "" {
		res.WhereText = &parsed.WhereText
	}
	return res
}
