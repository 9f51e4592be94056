package content

import "net/url"

// Store is a restaurant location. The *Key fields are translation keys.
type Store struct {
	NameKey    string
	AddressKey string
	HoursKey   string
	Phone      string
	MapQuery   string
}

// MapsURL links to the store on Google Maps.
func (s Store) MapsURL() string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(s.MapQuery)
}

// Stores lists the locations shown on the about page.
var Stores = []Store{
	{
		NameKey:    "store.taoyuan.name",
		AddressKey: "store.taoyuan.address",
		HoursKey:   "store.taoyuan.hours",
		Phone:      "+886-3-332-1000",
		MapQuery:   "麻煮MINI石頭火鍋 桃園藝文店",
	},
	{
		NameKey:    "store.zhongli.name",
		AddressKey: "store.zhongli.address",
		HoursKey:   "store.zhongli.hours",
		Phone:      "+886-3-465-2000",
		MapQuery:   "麻煮MINI石頭火鍋 中壢中原店",
	},
}
