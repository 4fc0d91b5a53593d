package faq

// DefaultFallback is returned when nothing matches.
const DefaultFallback = "I'm not sure about that. I can help with prices, bookings, payments, refunds, visas, " +
	"transport, ziyarat tours, desert safaris, hotels and our Umrah guide e-book. " +
	"For anything else please use the contact form and our team will get back to you."

// defaultRules are checked top to bottom. Price comes first so questions such as
// "desert safari prices" get the pricing answer.
var defaultRules = []Rule{
	{Key: "price", Keywords: []string{"price", "cost", "how much", "fee", "expensive", "cheap"}},
	{Key: "refund", Keywords: []string{"refund", "cancel", "money back"}},
	{Key: "payment", Keywords: []string{"pay", "card", "checkout", "installment"}},
	{Key: "booking", Keywords: []string{"book", "reserve", "reservation", "availab", "date"}},
	{Key: "visa", Keywords: []string{"visa", "passport", "nusuk"}},
	{Key: "ihram", Keywords: []string{"ihram", "clothing", "what to wear", "towel"}},
	{Key: "transport", Keywords: []string{"transport", "transfer", "airport", "pickup", "pick up", "bus", "taxi", "train"}},
	{Key: "ziyarat", Keywords: []string{"ziyarat", "ziyarah", "historical", "sightseeing", "makkah tour", "madinah tour"}},
	{Key: "desert_safari", Keywords: []string{"desert", "safari", "dune", "camel"}},
	{Key: "hotel", Keywords: []string{"hotel", "accommodation", "where to stay"}},
	{Key: "ebook", Keywords: []string{"ebook", "e-book", "guide book", "guidebook", "pdf"}},
	{Key: "currency", Keywords: []string{"currency", "riyal", "ringgit", "dirham", "exchange"}},
	{Key: "contact", Keywords: []string{"contact", "email", "phone", "whatsapp", "call you", "support"}},
	{Key: "greeting", Keywords: []string{"hello", "salam", "assalam", "good morning", "good evening"}},
}

var defaultAnswers = []Answer{
	{Key: "price", Response: "Prices are shown on every product page in your selected currency. Packages are priced per person; children's rates are shown at checkout where they apply."},
	{Key: "refund", Response: "Bookings can be cancelled for a full refund up to 72 hours before the service date. Later cancellations are refunded at 50%."},
	{Key: "payment", Response: "We accept all major credit and debit cards through our secure checkout. You will receive an email confirmation once payment is complete."},
	{Key: "booking", Response: "Pick a date and the number of adults and children on the product page, add it to your cart and complete checkout. Your bookings appear under My Bookings."},
	{Key: "visa", Response: "We do not issue visas. Most visitors can apply for an Umrah or tourist e-visa online; please make sure your passport is valid for at least six months."},
	{Key: "ihram", Response: "Our ihram sets include two seamless towels, a belt and a carry pouch. Sizes are listed on the product page."},
	{Key: "transport", Response: "We offer private transfers between Jeddah airport, Makkah and Madinah as well as intercity trips. Add the transfer and your travel date to the cart."},
	{Key: "ziyarat", Response: "Our guided ziyarat tours visit the historical sites of Makkah and Madinah with an experienced guide. Tours run daily and last about four hours."},
	{Key: "desert_safari", Response: "The desert safari includes hotel pickup, dune driving, a camel ride and dinner. It runs every evening and takes around six hours."},
	{Key: "hotel", Response: "We can recommend hotels close to the Haram in both Makkah and Madinah. Contact us with your dates and group size for options."},
	{Key: "ebook", Response: "Our Umrah guide e-book walks you through every ritual step by step with duas in Arabic and English. It is delivered as a download after purchase."},
	{Key: "currency", Response: "Use the currency selector to view prices in your preferred currency. Rates are refreshed hourly; you are charged in the store's base currency."},
	{Key: "contact", Response: "You can reach us through the contact form and we usually reply within one business day."},
	{Key: "greeting", Response: "Wa alaikum assalam! How can I help you plan your Umrah today?"},
	{Key: "umrah", Response: "Umrah is the lesser pilgrimage to Makkah that can be performed at any time of the year. Browse our packages and essentials to get ready."},
	{Key: "hajj", Response: "We currently focus on Umrah services and essentials. Hajj packages are not offered at the moment."},
}

// Default returns the built-in knowledge base.
func Default() *Matcher {
	m, err := New(defaultRules, defaultAnswers, DefaultFallback)
	if err != nil {
		panic(err)
	}
	return m
}
