package game

// StandardBoard returns the 48-city world map with Atlanta as the start city.
func StandardBoard() *Board {
	return &Board{
		Start: "atlanta",
		Adjacency: map[City][]City{
			"atlanta": {"chicago", "washington", "miami"},
			"chicago": {"montreal", "atlanta", "san francisco", "los angeles", "mexico city"},
			"washington": {"atlanta", "montreal", "new york", "miami"},
			"miami": {"atlanta", "washington", "mexico city", "bogota"},
			"montreal": {"chicago", "washington", "new york"},
			"san francisco": {"chicago", "los angeles", "tokyo", "manila"},
			"los angeles": {"san francisco", "chicago", "mexico city", "sydney"},
			"new york": {"washington", "montreal", "london", "madrid"},
			"london": {"new york", "madrid", "paris", "essen"},
			"madrid": {"new york", "london", "paris", "sao paulo", "algiers"},
			"paris": {"madrid", "london", "essen", "algiers", "milan"},
			"essen": {"london", "paris", "st petersburg", "milan"},
			"algiers": {"madrid", "paris", "istanbul", "cairo"},
			"mexico city": {"los angeles", "chicago", "miami", "bogota", "lima"},
			"milan": {"istanbul", "paris", "essen"},
			"st petersburg": {"essen", "istanbul", "moscow"},
			"istanbul": {"milan", "baghdad", "cairo", "algiers", "st petersburg", "moscow"},
			"cairo": {"algiers", "istanbul", "baghdad", "riyadh", "khartoum"},
			"moscow": {"istanbul", "st petersburg", "tehran"},
			"baghdad": {"tehran", "istanbul", "cairo", "karachi", "riyadh"},
			"riyadh": {"cairo", "baghdad", "karachi"},
			"tehran": {"baghdad", "delhi", "karachi", "moscow"},
			"karachi": {"tehran", "delhi", "baghdad", "riyadh", "mumbai"},
			"delhi": {"mumbai", "tehran", "karachi", "kolkata", "chennai"},
			"mumbai": {"karachi", "delhi", "chennai"},
			"kolkata": {"delhi", "chennai", "bangkok", "hong kong"},
			"hong kong": {"kolkata", "bangkok", "shanghai", "taipei", "ho chi minh", "manila"},
			"taipei": {"hong kong", "manila", "shanghai", "osaka"},
			"shanghai": {"beijing", "hong kong", "taipei", "tokyo", "seoul"},
			"beijing": {"shanghai", "seoul"},
			"seoul": {"beijing", "shanghai", "tokyo"},
			"tokyo": {"seoul", "shanghai", "osaka", "san francisco"},
			"osaka": {"tokyo", "taipei"},
			"bangkok": {"chennai", "jakarta", "ho chi minh", "hong kong", "kolkata"},
			"manila": {"san francisco", "taipei", "ho chi minh", "hong kong", "sydney"},
			"ho chi minh": {"manila", "bangkok", "jakarta", "hong kong"},
			"jakarta": {"ho chi minh", "bangkok", "chennai", "sydney"},
			"sydney": {"jakarta", "manila", "los angeles"},
			"chennai": {"jakarta", "bangkok", "mumbai", "delhi", "kolkata"},
			"khartoum": {"cairo", "lagos", "kinshasa", "johannesburg"},
			"johannesburg": {"khartoum", "kinshasa"},
			"kinshasa": {"khartoum", "johannesburg", "lagos"},
			"lagos": {"khartoum", "kinshasa", "sao paulo"},
			"sao paulo": {"madrid", "lagos", "bogota", "buenos aires"},
			"buenos aires": {"sao paulo", "bogota"},
			"lima": {"santiago", "bogota", "mexico city"},
			"santiago": {"lima"},
			"bogota": {"lima", "buenos aires", "sao paulo", "mexico city", "miami"},
		},
		Colors: map[City]Disease{
			"madrid": Blue,
			"paris": Blue,
			"chicago": Blue,
			"essen": Blue,
			"new york": Blue,
			"san francisco": Blue,
			"milan": Blue,
			"london": Blue,
			"st petersburg": Blue,
			"washington": Blue,
			"montreal": Blue,
			"atlanta": Blue,
			"osaka": Red,
			"beijing": Red,
			"taipei": Red,
			"seoul": Red,
			"shanghai": Red,
			"bangkok": Red,
			"manila": Red,
			"jakarta": Red,
			"hong kong": Red,
			"sydney": Red,
			"tokyo": Red,
			"ho chi minh": Red,
			"moscow": Black,
			"baghdad": Black,
			"cairo": Black,
			"riyadh": Black,
			"delhi": Black,
			"kolkata": Black,
			"karachi": Black,
			"algiers": Black,
			"istanbul": Black,
			"tehran": Black,
			"chennai": Black,
			"mumbai": Black,
			"sao paulo": Yellow,
			"lagos": Yellow,
			"kinshasa": Yellow,
			"buenos aires": Yellow,
			"mexico city": Yellow,
			"bogota": Yellow,
			"johannesburg": Yellow,
			"khartoum": Yellow,
			"lima": Yellow,
			"los angeles": Yellow,
			"santiago": Yellow,
			"miami": Yellow,
		},
	}
}
