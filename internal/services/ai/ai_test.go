package ai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// geminiStub returns a server that answers every generateContent call with the
// given JSON text as the single candidate part.
func geminiStub(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func stubbedClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c := NewClient("test-key", "", testLogger())
	c.baseURL = srv.URL
	return c
}

func TestBaseTitle(t *testing.T) {
	tests := []struct {
		name string
		in   TitleInput
		want string
	}{
		{"what only", TitleInput{What: "ボドゲ会"}, "ボドゲ会"},
		{"where prefixed", TitleInput{What: "ボドゲ会", Where: "渋谷"}, "渋谷でボドゲ会"},
		{
			"tags capped at two",
			TitleInput{What: "ボドゲ会", Where: "渋谷", Tags: []string{"初心者歓迎", "持込自由", "三つ目"}},
			"渋谷でボドゲ会｜#初心者歓迎・#持込自由",
		},
		{
			"free fee rewritten",
			TitleInput{What: "もくもく会", Where: "新宿", Fee: "0円"},
			"新宿でもくもく会｜無料",
		},
		{
			"capacity and fee",
			TitleInput{What: "もくもく会", Where: "新宿", Capacity: "6人", Fee: "500円"},
			"新宿でもくもく会｜6人・500円",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, BaseTitle(tc.in))
		})
	}
}

func TestValidTitle(t *testing.T) {
	in := TitleInput{What: "ボドゲ会", Where: "渋谷"}

	tests := []struct {
		name  string
		title string
		in    TitleInput
		want  bool
	}{
		{"ok", "渋谷でボドゲ会の夜集まろう", in, true},
		{"empty", "", in, false},
		{"banned word", "渋谷でボドゲ会（場所未定）", in, false},
		{"banned tbd case insensitive", "渋谷ボドゲ会 tbd edition", in, false},
		{"placeholder circles", "〇〇でボドゲ会しましょう", in, false},
		{"missing what", "渋谷で集まって遊ぼうの会", in, false},
		{"missing where", "ボドゲ会やります初心者歓迎", in, false},
		{"too short", "渋谷でボドゲ会", in, false},
		{"too long", "渋谷でボドゲ会をやります初心者歓迎持込自由お菓子ありのんびり夜までたっぷり遊ぼう", in, false},
		{
			"admin suffix stripped",
			"渋谷ボドゲ会｜初心者歓迎",
			TitleInput{What: "ボドゲ会", Where: "渋谷区"},
			true,
		},
		{"no inputs", "渋谷でボドゲ会の夜集まろう", TitleInput{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidTitle(tc.title, tc.in))
		})
	}
}

func TestTitler_UsesValidModelTitle(t *testing.T) {
	srv := geminiStub(t, `{"title":"渋谷でボドゲ会｜初心者歓迎"}`)
	defer srv.Close()

	titler := NewTitler(stubbedClient(t, srv), testLogger())
	title, source := titler.Generate(context.Background(), TitleInput{What: "ボドゲ会", Where: "渋谷"})
	assert.Equal(t, "渋谷でボドゲ会｜初心者歓迎", title)
	assert.Equal(t, SourceLLM, source)
}

func TestTitler_RejectsInvalidModelTitle(t *testing.T) {
	srv := geminiStub(t, `{"title":"大人気！場所は未定です"}`)
	defer srv.Close()

	titler := NewTitler(stubbedClient(t, srv), testLogger())
	title, source := titler.Generate(context.Background(), TitleInput{What: "ボドゲ会", Where: "渋谷"})
	assert.Equal(t, BaseTitle(TitleInput{What: "ボドゲ会", Where: "渋谷"}), title)
	assert.Equal(t, SourceBase, source)
}

func TestTitler_BaseWhenUnconfiguredOrIncomplete(t *testing.T) {
	titler := NewTitler(NewClient("", "", testLogger()), testLogger())

	title, source := titler.Generate(context.Background(), TitleInput{What: "ボドゲ会", Where: "渋谷"})
	assert.Equal(t, "渋谷でボドゲ会", title)
	assert.Equal(t, SourceBase, source)

	title, source = titler.Generate(context.Background(), TitleInput{What: "ボドゲ会"})
	assert.Equal(t, "ボドゲ会", title)
	assert.Equal(t, SourceBase, source)
}

func TestFiller_ModelResponse(t *testing.T) {
	srv := geminiStub(t, `{"what":"ボドゲ","where_text":"渋谷","start_iso":"2025-10-02T19:00:00+09:00","end_iso":null,"latitude":35.66,"longitude":139.7}`)
	defer srv.Close()

	filler := NewFiller(stubbedClient(t, srv), testLogger())
	jst := time.FixedZone("JST", 9*60*60)
	res, source := filler.Fill(context.Background(), "明日渋谷でボドゲ", jst)

	assert.Equal(t, SourceLLM, source)
	require.NotNil(t, res.What)
	assert.Equal(t, "ボドゲ", *res.What)
	require.NotNil(t, res.StartAt)
	assert.True(t, res.StartAt.Equal(time.Date(2025, 10, 2, 19, 0, 0, 0, jst)))
	// Missing end gets the two hour default.
	require.NotNil(t, res.EndAt)
	assert.True(t, res.EndAt.Equal(res.StartAt.Add(2*time.Hour)))
	require.NotNil(t, res.Latitude)
	assert.InDelta(t, 35.66, *res.Latitude, 0.001)
}

func TestFiller_HeuristicFallbackWhenUnconfigured(t *testing.T) {
	filler := NewFiller(NewClient("", "", testLogger()), testLogger())
	jst := time.FixedZone("JST", 9*60*60)
	filler.now = func() time.Time { return time.Date(2025, 10, 1, 12, 0, 0, 0, jst) }

	res, source := filler.Fill(context.Background(), "明日19時に映画、渋谷で見たい", jst)
	assert.Equal(t, SourceHeuristic, source)
	require.NotNil(t, res.StartAt)
	assert.Equal(t, 19, res.StartAt.Hour())
	require.NotNil(t, res.WhereText)
	assert.Equal(t, "渋谷", *res.WhereText)
}

func TestFiller_HeuristicFallbackOnProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	filler := NewFiller(stubbedClient(t, srv), testLogger())
	jst := time.FixedZone("JST", 9*60*60)
	filler.now = func() time.Time { return time.Date(2025, 10, 1, 12, 0, 0, 0, jst) }

	res, source := filler.Fill(context.Background(), "明日の夜ボドゲ", jst)
	assert.Equal(t, SourceHeuristic, source)
	require.NotNil(t, res.StartAt)
	assert.Equal(t, 19, res.StartAt.Hour())
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences(`{"a":1}`))
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient("", "", testLogger())
	_, err := c.generateJSON(context.Background(), "p", 0.2)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
