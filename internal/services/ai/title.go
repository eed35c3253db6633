package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

const titleSystemPrompt = "あなたは日本語でイベントの魅力的で簡潔なタイトルを作るアシスタントです。" +
	"以下の指示に厳密に従ってください。" +
	"1) 使ってよい情報は入力の what / where / tags / capacity / fee / description のみ。" +
	"   入力にない事実・評価・誇張（例: 大人気, 本格, プロ級 など）は付け足さない。" +
	"2) タイトルには必ず what と where を含める。" +
	"3) 強調要素は入力から最大2つ（tags / capacity / fee / description から抽出）。" +
	"4) 日時（年月日・曜日・時刻）はタイトルに含めない。" +
	"5) 禁止: 『未定』『お問い合わせ』『TBD』『coming soon』『〇〇／○○／◯◯』等の曖昧語、絵文字や過度な記号、煽り表現。" +
	"6) トーンは具体的・端的。長さはおよそ12〜28文字を目安に自然な日本語。" +
	"7) 区切り記号は必要に応じて「｜」「・」「×」「＠」を使用してよい（使い過ぎない）。" +
	"8) 出力は JSON のみで {\"title\":\"...\"} を返す。前後に追加テキストは一切不要。"

var (
	bannedTitleRe = regexp.MustCompile(`(?i)(未定|お問(い)?合わせ|TBD|coming soon|〇〇|○○|◯◯)`)
	adminSuffixRe = regexp.MustCompile(`[都道府県市区町村]`)
	spaceRunRe    = regexp.MustCompile(`[\s　]+`)
)

// TitleInput holds the event fields a title may be built from.
type TitleInput struct {
	What        string
	Where       string
	Tags        []string
	Capacity    string
	Fee         string
	Description string
}

// normTitle collapses runs of whitespace (including full-width spaces).
func normTitle(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(s, " "))
}

// BaseTitle composes a deterministic title from the inputs. Used whenever the
// model output is unavailable or rejected.
func BaseTitle(in TitleInput) string {
	head := in.What
	if in.Where != "" {
		head = strings.TrimSpace(in.Where + "で" + in.What)
	}
	var extras []string
	if len(in.Tags) > 0 {
		tags := in.Tags
		if len(tags) > 2 {
			tags = tags[:2]
		}
		hashed := make([]string, len(tags))
		for i, t := range tags {
			hashed[i] = "#" + t
		}
		extras = append(extras, strings.Join(hashed, "・"))
	}
	if in.Capacity != "" {
		extras = append(extras, in.Capacity)
	}
	if in.Fee != "" {
		fee := in.Fee
		if fee == "0円" {
			fee = "無料"
		}
		extras = append(extras, fee)
	}
	if len(extras) > 0 {
		return head + "｜" + strings.Join(extras, "・")
	}
	return head
}

// ValidTitle reports whether a model-produced title is acceptable: free of
// banned filler words, mentions both what and where, and runs 8 to 32
// characters. The where check also accepts the place with administrative
// suffixes (都/県/市...) removed.
func ValidTitle(title string, in TitleInput) bool {
	if title == "" || bannedTitleRe.MatchString(title) {
		return false
	}
	if in.What == "" || in.Where == "" {
		return false
	}
	tt := normTitle(title)
	what := normTitle(in.What)
	where := normTitle(in.Where)
	whereShort := adminSuffixRe.ReplaceAllString(where, "")
	if !strings.Contains(tt, what) {
		return false
	}
	if !strings.Contains(tt, where) && !strings.Contains(tt, whereShort) {
		return false
	}
	n := len([]rune(tt))
	return n >= 8 && n <= 32
}

// Titler generates event titles, preferring the model and falling back to
// BaseTitle when the candidate is missing or invalid.
type Titler struct {
	client *Client
	logger *slog.Logger
}

func NewTitler(client *Client, logger *slog.Logger) *Titler {
	return &Titler{client: client, logger: logger}
}

// Generate returns a title and its source (SourceLLM or SourceBase). It never
// fails: any model trouble degrades to the deterministic base title.
func (t *Titler) Generate(ctx context.Context, in TitleInput) (string, string) {
	in.What = normTitle(in.What)
	in.Where = normTitle(in.Where)

	if in.What == "" || in.Where == "" || !t.client.Configured() {
		return BaseTitle(in), SourceBase
	}

	cand, err := t.generateWithModel(ctx, in)
	if err != nil {
		t.logger.WarnContext(ctx, "ai title falling back to base", "err", err)
		return BaseTitle(in), SourceBase
	}
	if !ValidTitle(cand, in) {
		return BaseTitle(in), SourceBase
	}
	return cand, SourceLLM
}

func (t *Titler) generateWithModel(ctx context.Context, in TitleInput) (string, error) {
	tags := in.Tags
	if len(tags) > 2 {
		tags = tags[:2]
	}
	prompt := fmt.Sprintf("%s\n\nwhat: %s\nwhere: %s\ntags: %s\ncapacity: %s\nfee: %s\ndescription: %s",
		titleSystemPrompt, in.What, in.Where, strings.Join(tags, "・"), in.Capacity, in.Fee, in.Description)

	raw, err := t.client.generateJSON(ctx, prompt, 0.3)
	if err != nil {
		return "", err
	}
	var payload struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return strings.TrimSpace(payload.Title), nil
}
