package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParsedEvent holds the fields recovered from a Japanese free-text event
// description. Empty / nil fields mean the text did not mention them.
type ParsedEvent struct {
	What      string
	WhereText string
	StartAt   *time.Time
	EndAt     *time.Time
}

// Daypart keywords and their default start hours. Order matters: the first
// keyword found in the text wins.
var daypartDefaults = []struct {
	kw   string
	hour int
}{
	{"朝", 9},
	{"午前", 10},
	{"昼", 12},
	{"午後", 15},
	{"夕方", 17},
	{"夜", 19},
	{"深夜", 23},
}

var (
	dowRe        = regexp.MustCompile(`(?:今週の)?([日月火水木金土])曜(?:日)?`)
	numericDayRe = regexp.MustCompile(`(\d{1,2})[/／月](\d{1,2})(?:日)?`)
	timeRangeRe  = regexp.MustCompile(`(?:(午前|午後))?(\d{1,2})(?::|：)?(\d{1,2})?(?:時)?[~〜-](?:(午前|午後))?(\d{1,2})(?::|：)?(\d{1,2})?時?`)
	singleTimeRe = regexp.MustCompile(`(午前|午後)?(\d{1,2})(?::|：)?(\d{1,2})?(?:時|時半)?`)

	whereTrailRe   = regexp.MustCompile(`[\x{3040}-\x{30FF}\x{4E00}-\x{9FAF}\w\-\s々ヶー]+$`)
	wherePlaceRe   = regexp.MustCompile(`([\x{4E00}-\x{9FAF}\x{3040}-\x{30FF}\w]+)(駅|公園|周辺|カフェ|映画館)`)
	whereParticle  = regexp.MustCompile(`[はもにへを]$`)
	desireVerbRe   = regexp.MustCompile(`(したい|やりたい|見たい|行きたい|鑑賞したい|鑑賞|集まりたい|したいなぁ?|したいです)`)
	particleRe     = regexp.MustCompile(`(で|を|に)`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	dowByCharacter = map[string]time.Weekday{
		"日": time.Sunday, "月": time.Monday, "火": time.Tuesday, "水": time.Wednesday,
		"木": time.Thursday, "金": time.Friday, "土": time.Saturday,
	}
)

// midnight returns d truncated to its calendar day.
func midnight(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// parseEventDate resolves relative and numeric date expressions against now.
func parseEventDate(input string, now time.Time) *time.Time {
	text := whitespaceRe.ReplaceAllString(input, "")

	if strings.Contains(text, "今日") {
		d := now
		return &d
	}
	if strings.Contains(text, "明後日") {
		d := now.AddDate(0, 0, 2)
		return &d
	}
	if strings.Contains(text, "明日") {
		d := now.AddDate(0, 0, 1)
		return &d
	}

	// 今週末 means the upcoming Saturday.
	if strings.Contains(text, "今週末") {
		toSat := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
		if toSat == 0 {
			toSat = 7
		}
		d := now.AddDate(0, 0, toSat)
		return &d
	}

	// 9/10 or 9月10日, rolling into next year when already past. Checked
	// before weekdays so the 月 in 9月10日 is not read as Monday.
	if m := numericDayRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			d := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location())
			if d.Before(now) {
				d = d.AddDate(1, 0, 0)
			}
			return &d
		}
	}

	if m := dowRe.FindStringSubmatch(text); m != nil {
		dow := dowByCharacter[m[1]]
		delta := (int(dow) - int(now.Weekday()) + 7) % 7
		if !strings.Contains(text, "今週の") && delta == 0 {
			// Bare "X曜" means the next occurrence, not today.
			delta = 7
		}
		d := now.AddDate(0, 0, delta)
		return &d
	}

	return nil
}

func applyAmPm(hour int, ampm string) int {
	if ampm == "午後" && hour < 12 {
		return hour + 12
	}
	if ampm == "午前" && hour == 12 {
		return 0
	}
	return hour
}

// parseTimeRange reads explicit times or daypart keywords onto the given base
// date. A single time yields a two hour window. A range ending before it
// starts rolls the end into the next day.
func parseTimeRange(input string, date *time.Time, now time.Time) (start, end *time.Time) {
	text := whitespaceRe.ReplaceAllString(input, "")
	base := now
	if date != nil {
		base = *date
	}
	day := midnight(base)

	if m := timeRangeRe.FindStringSubmatch(text); m != nil {
		h1, _ := strconv.Atoi(m[2])
		min1 := 0
		if m[3] != "" {
			min1, _ = strconv.Atoi(m[3])
		}
		h1 = applyAmPm(h1, m[1])
		s := day.Add(time.Duration(h1)*time.Hour + time.Duration(min1)*time.Minute)

		h2, _ := strconv.Atoi(m[5])
		min2 := 0
		if m[6] != "" {
			min2, _ = strconv.Atoi(m[6])
		}
		h2 = applyAmPm(h2, m[4])
		e := day.Add(time.Duration(h2)*time.Hour + time.Duration(min2)*time.Minute)
		if !e.After(s) {
			e = e.AddDate(0, 0, 1)
		}
		return &s, &e
	}

	if m := singleTimeRe.FindStringSubmatch(text); m != nil && m[2] != "" {
		h, _ := strconv.Atoi(m[2])
		min := 0
		if m[3] != "" {
			min, _ = strconv.Atoi(m[3])
		} else if strings.Contains(text, "時半") {
			min = 30
		}
		h = applyAmPm(h, m[1])
		s := day.Add(time.Duration(h)*time.Hour + time.Duration(min)*time.Minute)
		e := s.Add(2 * time.Hour)
		return &s, &e
	}

	for _, dp := range daypartDefaults {
		if strings.Contains(text, dp.kw) {
			s := day.Add(time.Duration(dp.hour) * time.Hour)
			e := s.Add(2 * time.Hour)
			return &s, &e
		}
	}

	return nil, nil
}

// extractWhereText pulls a place name out of the text: the phrase before the
// last "で", or a token ending in a place suffix such as 駅 or 公園.
func extractWhereText(input string) string {
	if i := strings.LastIndex(input, "で"); i >= 0 {
		before := input[:i]
		loc := before
		if m := whereTrailRe.FindString(before); m != "" {
			loc = m
		}
		loc = strings.TrimSpace(loc)
		if loc != "" {
			return strings.TrimSpace(whereParticle.ReplaceAllString(loc, ""))
		}
	}

	if m := wherePlaceRe.FindString(input); m != "" {
		return strings.TrimSpace(m)
	}
	return ""
}

// stripKnownParts removes the place name, desire verbs and connecting
// particles, leaving the activity description.
func stripKnownParts(input string, parts ...string) string {
	s := input
	for _, p := range parts {
		if p != "" {
			s = strings.Replace(s, p, " ", 1)
		}
	}
	s = desireVerbRe.ReplaceAllString(s, " ")
	s = particleRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ParseFreeForm extracts what/where/when from Japanese free text without any
// LLM involvement. Used as the fallback when the model is unavailable.
func ParseFreeForm(input string, now time.Time) ParsedEvent {
	date := parseEventDate(input, now)
	start, end := parseTimeRange(input, date, now)
	if start == nil {
		start = date
	}
	if end == nil && start != nil {
		e := start.Add(2 * time.Hour)
		end = &e
	}

	whereText := extractWhereText(input)
	what := stripKnownParts(input, whereText)
	if r := []rune(what); len(r) > 30 {
		what = string(r[:30])
	}

	return ParsedEvent{What: what, WhereText: whereText, StartAt: start, EndAt: end}
}
