package catalog

// Seed is the bundled catalog used to populate an empty store.
type Seed struct {
	Countries []Country
	Places    []Place
	Weather   []Weather
}

func place(country, name, short, long string, images ...string) Place {
	return Place{
		Name:             name,
		Country:          country,
		ShortDescription: short,
		Description:      long,
		Images:           images,
	}
}

// SeedData returns a fresh copy of the bundled catalog.
func SeedData() Seed {
	return Seed{
		Countries: []Country{
			{Name: "Italy", Flag: "🇮🇹", Code: "IT"},
			{Name: "Japan", Flag: "🇯🇵", Code: "JP"},
			{Name: "Peru", Flag: "🇵🇪", Code: "PE"},
			{Name: "Egypt", Flag: "🇪🇬", Code: "EG"},
			{Name: "Norway", Flag: "🇳🇴", Code: "NO"},
		},
		Places: []Place{
			place("Italy", "Colosseum", "The largest ancient amphitheatre ever built, in the heart of Rome.",
				"Built under the Flavian emperors, the Colosseum held up to 50,000 spectators for gladiatorial contests and public spectacles.",
				"assets/italy/colosseum_1.jpg", "assets/italy/colosseum_2.jpg"),
			place("Italy", "Amalfi Coast", "Cliffside villages stacked above the Tyrrhenian Sea.",
				"A fifty-kilometre stretch of coastline south of Naples known for Positano, Ravello and lemon groves terraced into the rock.",
				"assets/italy/amalfi_1.jpg"),
			place("Italy", "Venice", "A city of canals, bridges and gondolas built on 118 islands.",
				"Venice grew from a lagoon refuge into a maritime republic; the Grand Canal and St Mark's Square remain its centre.",
				"assets/italy/venice_1.jpg", "assets/italy/venice_2.jpg"),
			place("Italy", "Dolomites", "Jagged pale peaks for hiking in summer and skiing in winter.",
				"A UNESCO-listed range in the north-east, crossed by via ferrata routes and high mountain huts.",
				"assets/italy/dolomites_1.jpg"),
			place("Italy", "Florence", "Birthplace of the Renaissance and home of the Duomo.",
				"The Uffizi, Ponte Vecchio and Brunelleschi's dome make Florence the densest collection of Renaissance art anywhere.",
				"assets/italy/florence_1.jpg"),

			place("Japan", "Mount Fuji", "Japan's highest mountain and a near-perfect volcanic cone.",
				"Climbing season runs from July to early September; the Fuji Five Lakes give the classic reflected view.",
				"assets/japan/fuji_1.jpg", "assets/japan/fuji_2.jpg"),
			place("Japan", "Kyoto", "Former imperial capital with over a thousand temples.",
				"Fushimi Inari's torii gates, the Golden Pavilion and the Gion district preserve old Japan.",
				"assets/japan/kyoto_1.jpg"),
			place("Japan", "Shibuya Crossing", "The world's busiest pedestrian scramble.",
				"Up to three thousand people cross at once when the lights change outside Shibuya station in Tokyo.",
				"assets/japan/shibuya_1.jpg"),
			place("Japan", "Nara Park", "Free-roaming deer among ancient temples.",
				"Home to Todai-ji's giant bronze Buddha and more than a thousand sika deer regarded as sacred messengers.",
				"assets/japan/nara_1.jpg"),

			place("Peru", "Machu Picchu", "The 15th-century Inca citadel above the Urubamba valley.",
				"Reached by the Inca Trail or by train to Aguas Calientes; entry is limited by timed tickets.",
				"assets/peru/machu_picchu_1.jpg", "assets/peru/machu_picchu_2.jpg"),
			place("Peru", "Rainbow Mountain", "Striped mineral slopes at over 5,000 metres.",
				"Vinicunca's colours come from layered sediment; the hike starts before dawn from Cusco.",
				"assets/peru/vinicunca_1.jpg"),
			place("Peru", "Lake Titicaca", "The highest navigable lake in the world.",
				"The Uros people live on floating islands woven from totora reeds.",
				"assets/peru/titicaca_1.jpg"),

			place("Egypt", "Pyramids of Giza", "The last standing wonder of the ancient world.",
				"Khufu's Great Pyramid was the tallest structure on Earth for nearly four thousand years.",
				"assets/egypt/giza_1.jpg", "assets/egypt/giza_2.jpg"),
			place("Egypt", "Luxor", "Temples and royal tombs along the Nile.",
				"Karnak, Luxor Temple and the Valley of the Kings make up the world's greatest open-air museum.",
				"assets/egypt/luxor_1.jpg"),
			place("Egypt", "Abu Simbel", "Colossal rock temples of Ramesses II.",
				"Relocated in the 1960s to escape Lake Nasser; twice a year the sun lights the inner sanctuary.",
				"assets/egypt/abu_simbel_1.jpg"),

			place("Norway", "Geirangerfjord", "A deep blue fjord lined with waterfalls.",
				"The Seven Sisters and Suitor falls face each other across the fjord.",
				"assets/norway/geiranger_1.jpg"),
			place("Norway", "Lofoten", "Arctic islands of red fishing cabins and sharp peaks.",
				"Midnight sun in summer and northern lights in winter.",
				"assets/norway/lofoten_1.jpg"),
			place("Norway", "Preikestolen", "A flat cliff 604 metres above the Lysefjord.",
				"A four-hour round trip hike from the Preikestolen mountain lodge.",
				"assets/norway/preikestolen_1.jpg"),
			place("Norway", "Bergen", "Colourful Hanseatic wharf between seven mountains.",
				"Bryggen's wooden warehouses and the Fløibanen funicular define Norway's second city.",
				"assets/norway/bergen_1.jpg"),
		},
		Weather: []Weather{
			{Country: "Italy", Date: "Mon 12 May", Description: "Sunny", IconURL: "assets/weather/sunny.png", Forecast: []float64{24, 25, 23, 22, 26, 27, 25}},
			{Country: "Japan", Date: "Mon 12 May", Description: "Light rain", IconURL: "assets/weather/rain.png", Forecast: []float64{19, 18, 20, 21, 19, 17, 18}},
			{Country: "Peru", Date: "Mon 12 May", Description: "Partly cloudy", IconURL: "assets/weather/cloudy.png", Forecast: []float64{16, 17, 15, 16, 18, 17, 16}},
			{Country: "Egypt", Date: "Mon 12 May", Description: "Clear", IconURL: "assets/weather/sunny.png", Forecast: []float64{33, 34, 35, 33, 32, 34, 36}},
			{Country: "Norway", Date: "Mon 12 May", Description: "Overcast", IconURL: "assets/weather/cloudy.png", Forecast: []float64{11, 12, 10, 9, 12, 13, 11}},
		},
	}
}
