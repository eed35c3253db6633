package services

import (
	"regexp"
	"strings"
)

// iconRule maps a keyword pattern to a Lucide icon name used by the client.
type iconRule struct {
	kw   *regexp.Regexp
	icon string
}

// Ordered: first match wins.
var iconRules = []iconRule{
	{regexp.MustCompile(`(?i)アニメ|映画|シネマ|鑑賞|動画|ムービー`), "Film"},
	{regexp.MustCompile(`(?i)テレビ|ドラマ|配信|ストリーミング`), "TvMinimalPlay"},
	{regexp.MustCompile(`(?i)カラオケ|歌|うた|合唱|ボーカル`), "Mic2"},
	{regexp.MustCompile(`(?i)音楽|ライブ|バンド|コンサート`), "Music"},
	{regexp.MustCompile(`(?i)勉強|もくもく|学習|自習|読書|本`), "BookOpen"},
	{regexp.MustCompile(`(?i)ゲーム|ボドゲ|ボードゲーム|Switch|PS5|任天堂|TRPG`), "Gamepad2"},
	{regexp.MustCompile(`(?i)スポーツ|運動|ジム|筋トレ|ラン|マラソン|サッカー|野球|テニス|バドミントン|バスケ`), "Dumbbell"},
	{regexp.MustCompile(`(?i)飲み会|居酒屋|乾杯|ビール|酒|飲酒`), "Beer"},
	{regexp.MustCompile(`(?i)コーヒー|カフェ|喫茶|珈琲`), "Coffee"},
	{regexp.MustCompile(`(?i)写真|撮影|カメラ|フォト`), "Camera"},
	{regexp.MustCompile(`(?i)旅行|遠足|散歩|お出かけ|外出|ハイキング|登山`), "MapPin"},
	{regexp.MustCompile(`(?i)料理|ご飯|ごはん|ゴハン|食事|ランチ|ディナー|スイーツ|グルメ`), "Utensils"},
	{regexp.MustCompile(`(?i)交流|雑談|ミートアップ|オフ会|懇親`), "Users"},
	{regexp.MustCompile(`(?i)映画館|映画鑑賞`), "Clapperboard"},
}

var iconEnglishFallbacks = []iconRule{
	{regexp.MustCompile(`film|movie|cinema|watch`), "Film"},
	{regexp.MustCompile(`study|learn|read|book`), "BookOpen"},
	{regexp.MustCompile(`game|play|board`), "Gamepad2"},
	{regexp.MustCompile(`sport|run|gym|train`), "Dumbbell"},
	{regexp.MustCompile(`coffee|cafe`), "Coffee"},
	{regexp.MustCompile(`photo|camera|shoot`), "Camera"},
	{regexp.MustCompile(`travel|trip|walk|hike`), "MapPin"},
	{regexp.MustCompile(`eat|lunch|dinner|food`), "Utensils"},
	{regexp.MustCompile(`chat|meet|friend|social`), "Users"},
}

// PickIconName picks an icon name for an activity description.
// Falls back to "Calendar" when nothing matches.
func PickIconName(what string) string {
	text := strings.TrimSpace(what)
	if text == "" {
		return "Calendar"
	}
	for _, r := range iconRules {
		if r.kw.MatchString(text) {
			return r.icon
		}
	}
	lower := strings.ToLower(text)
	for _, r := range iconEnglishFallbacks {
		if r.kw.MatchString(lower) {
			return r.icon
		}
	}
	if strings.Contains(text, "みんなで決めたい") {
		return "Users"
	}
	return "Calendar"
}
