// Package enrich augments activities with geocoded current-weather data.
// It is strictly best-effort: every failure is logged and swallowed, leaving
// the activity without weather so a later pass retries naturally.
package enrich

import "strings"

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lon float64
}

// place is one entry in the static lookup table.
type place struct {
	name   string
	coords Coordinates
}

// places maps well-known prefecture, city, and landmark names to their
// coordinates. A static hit avoids a network round-trip entirely and is
// exact for the names itineraries in this region actually use. Ordered so
// that substring matching is deterministic; first match wins.
var places = []place{
	{"北海道", Coordinates{43.0642, 141.3469}},
	{"札幌", Coordinates{43.0642, 141.3469}},
	{"青森", Coordinates{40.8244, 140.74}},
	{"盛岡", Coordinates{39.7036, 141.1527}},
	{"岩手", Coordinates{39.7036, 141.1527}},
	{"仙台", Coordinates{38.2682, 140.8694}},
	{"宮城", Coordinates{38.2682, 140.8694}},
	{"秋田", Coordinates{39.7186, 140.1024}},
	{"山形", Coordinates{38.2554, 140.3396}},
	{"福島", Coordinates{37.7503, 140.4675}},
	{"水戸", Coordinates{36.3418, 140.4468}},
	{"茨城", Coordinates{36.3418, 140.4468}},
	{"宇都宮", Coordinates{36.5657, 139.8836}},
	{"栃木", Coordinates{36.5657, 139.8836}},
	{"前橋", Coordinates{36.3895, 139.0634}},
	{"群馬", Coordinates{36.3895, 139.0634}},
	{"大宮", Coordinates{35.9063, 139.6247}},
	{"さいたま", Coordinates{35.8569, 139.6489}},
	{"埼玉", Coordinates{35.8569, 139.6489}},
	{"千葉", Coordinates{35.6073, 140.1063}},
	{"新宿", Coordinates{35.6895, 139.6917}},
	{"渋谷", Coordinates{35.6581, 139.7017}},
	{"上野", Coordinates{35.7126, 139.7766}},
	{"東京", Coordinates{35.6895, 139.6917}},
	{"鎌倉", Coordinates{35.3192, 139.5467}},
	{"箱根", Coordinates{35.2324, 139.1069}},
	{"横浜", Coordinates{35.4478, 139.6425}},
	{"神奈川", Coordinates{35.4478, 139.6425}},
	{"新潟", Coordinates{37.9162, 139.0363}},
	{"富山", Coordinates{36.6953, 137.2113}},
	{"金沢", Coordinates{36.5613, 136.6562}},
	{"石川", Coordinates{36.5613, 136.6562}},
	{"福井", Coordinates{36.0641, 136.2222}},
	{"富士山", Coordinates{35.3606, 138.7274}},
	{"甲府", Coordinates{35.6621, 138.5683}},
	{"山梨", Coordinates{35.6621, 138.5683}},
	{"軽井沢", Coordinates{36.348, 138.635}},
	{"長野", Coordinates{36.6485, 138.1942}},
	{"岐阜", Coordinates{35.3912, 136.7223}},
	{"熱海", Coordinates{35.0963, 139.0717}},
	{"静岡", Coordinates{34.9756, 138.3828}},
	{"名古屋", Coordinates{35.1815, 136.9066}},
	{"愛知", Coordinates{35.1815, 136.9066}},
	{"伊勢", Coordinates{34.485, 136.705}},
	{"三重", Coordinates{34.7186, 136.5052}},
	{"大津", Coordinates{35.0045, 135.8686}},
	{"滋賀", Coordinates{35.0045, 135.8686}},
	{"嵐山", Coordinates{35.012, 135.677}},
	{"京都", Coordinates{35.0116, 135.7681}},
	{"難波", Coordinates{34.6648, 135.5019}},
	{"梅田", Coordinates{34.7025, 135.4959}},
	{"大阪", Coordinates{34.6937, 135.5023}},
	{"姫路", Coordinates{34.8151, 134.6853}},
	{"神戸", Coordinates{34.6913, 135.183}},
	{"兵庫", Coordinates{34.6913, 135.183}},
	{"奈良", Coordinates{34.6851, 135.805}},
	{"和歌山", Coordinates{34.2305, 135.1708}},
	{"鳥取", Coordinates{35.5011, 134.2351}},
	{"出雲", Coordinates{35.3606, 132.7547}},
	{"松江", Coordinates{35.4681, 133.0484}},
	{"島根", Coordinates{35.4681, 133.0484}},
	{"岡山", Coordinates{34.6618, 133.9344}},
	{"宮島", Coordinates{34.295, 132.32}},
	{"広島", Coordinates{34.3853, 132.4553}},
	{"山口", Coordinates{34.1785, 131.4737}},
	{"徳島", Coordinates{34.0703, 134.5548}},
	{"高松", Coordinates{34.3402, 134.0434}},
	{"香川", Coordinates{34.3402, 134.0434}},
	{"松山", Coordinates{33.8392, 132.7654}},
	{"愛媛", Coordinates{33.8392, 132.7654}},
	{"高知", Coordinates{33.5597, 133.5311}},
	{"博多", Coordinates{33.5904, 130.4017}},
	{"福岡", Coordinates{33.5904, 130.4017}},
	{"佐賀", Coordinates{33.2635, 130.3008}},
	{"長崎", Coordinates{32.7503, 129.8777}},
	{"熊本", Coordinates{32.8032, 130.7079}},
	{"別府", Coordinates{33.2783, 131.5039}},
	{"大分", Coordinates{33.2382, 131.6126}},
	{"宮崎", Coordinates{31.9077, 131.4202}},
	{"鹿児島", Coordinates{31.5966, 130.5571}},
	{"石垣", Coordinates{24.3411, 124.1561}},
	{"那覇", Coordinates{26.2124, 127.6809}},
	{"沖縄", Coordinates{26.2124, 127.6809}},
}

// lookupStatic scans the table for the first place name contained in text.
func lookupStatic(text string) (Coordinates, bool) {
	for _, p := range places {
		if strings.Contains(text, p.name) {
			return p.coords, true
		}
	}
	return Coordinates{}, false
}
