package sentiment

// Valence lexicon tuned for financial news headlines. Values follow the
// usual polarity-lexicon convention of roughly [-4, 4].
var lexicon = map[string]float64{
	// positive
	"gain": 1.8, "gains": 1.8, "gained": 1.8,
	"rally": 2.1, "rallies": 2.1, "rallied": 2.1,
	"surge": 2.4, "surges": 2.4, "surged": 2.4,
	"soar": 2.6, "soars": 2.6, "soared": 2.6,
	"jump": 1.9, "jumps": 1.9, "jumped": 1.9,
	"climb": 1.6, "climbs": 1.6, "climbed": 1.6,
	"rise": 1.5, "rises": 1.5, "rose": 1.5,
	"beat": 1.9, "beats": 1.9,
	"record": 1.4, "strong": 1.8, "stronger": 1.9,
	"profit": 1.7, "profits": 1.7, "profitable": 1.8,
	"growth": 1.6, "grow": 1.4, "grows": 1.4, "grew": 1.4,
	"upgrade": 2.0, "upgraded": 2.0, "upgrades": 2.0,
	"bullish": 2.2, "outperform": 2.0, "outperforms": 2.0,
	"win": 1.8, "wins": 1.8, "winner": 1.9,
	"boom": 2.2, "upbeat": 1.7, "optimistic": 1.9, "optimism": 1.9,
	"exceed": 1.8, "exceeds": 1.8, "exceeded": 1.8,
	"positive": 1.6, "success": 2.0, "successful": 2.0,
	"recovery": 1.5, "recover": 1.4, "recovers": 1.4, "rebound": 1.7, "rebounds": 1.7,
	"breakthrough": 2.3, "innovative": 1.5, "momentum": 1.2,
	"dividend": 0.9, "buyback": 1.1, "expansion": 1.3, "expand": 1.1, "expands": 1.1,
	"good": 1.4, "great": 2.0, "best": 2.4, "better": 1.5, "improve": 1.5, "improves": 1.5, "improved": 1.5,

	// negative
	"loss": -1.9, "losses": -1.9, "lose": -1.7, "loses": -1.7, "lost": -1.7,
	"fall": -1.5, "falls": -1.5, "fell": -1.5, "fallen": -1.5,
	"drop": -1.7, "drops": -1.7, "dropped": -1.7,
	"plunge": -2.6, "plunges": -2.6, "plunged": -2.6,
	"crash": -2.9, "crashes": -2.9, "crashed": -2.9,
	"tumble": -2.3, "tumbles": -2.3, "tumbled": -2.3,
	"slump": -2.2, "slumps": -2.2, "slumped": -2.2,
	"sink": -2.0, "sinks": -2.0, "sank": -2.0,
	"decline": -1.6, "declines": -1.6, "declined": -1.6,
	"slide": -1.6, "slides": -1.6, "slid": -1.6,
	"miss": -1.8, "misses": -1.8, "missed": -1.8,
	"weak": -1.7, "weaker": -1.8, "weakness": -1.8,
	"downgrade": -2.0, "downgraded": -2.0, "downgrades": -2.0,
	"bearish": -2.2, "underperform": -2.0, "underperforms": -2.0,
	"risk": -1.1, "risks": -1.1, "risky": -1.3,
	"fear": -1.9, "fears": -1.9, "panic": -2.5,
	"lawsuit": -1.8, "fraud": -2.8, "probe": -1.4, "investigation": -1.5,
	"bankruptcy": -3.0, "bankrupt": -3.0, "default": -2.4,
	"layoff": -2.0, "layoffs": -2.0, "cuts": -1.3, "cut": -1.2,
	"warning": -1.6, "warn": -1.5, "warns": -1.5, "warned": -1.5,
	"recession": -2.3, "inflation": -1.2, "selloff": -2.2, "sell-off": -2.2,
	"negative": -1.6, "concern": -1.3, "concerns": -1.3, "worried": -1.6, "worries": -1.6,
	"bad": -1.5, "worst": -2.5, "worse": -1.8, "poor": -1.6, "disappointing": -2.0, "disappoints": -1.9,
	"plummet": -2.7, "plummets": -2.7, "plummeted": -2.7,
	"volatile": -1.0, "volatility": -0.9, "uncertainty": -1.3, "uncertain": -1.2,
}

// boosters scale the valence of the following sentiment word.
var boosters = map[string]float64{
	"very": 0.293, "extremely": 0.293, "hugely": 0.293, "massively": 0.293,
	"significantly": 0.2, "sharply": 0.25, "strongly": 0.2, "substantially": 0.2,
	"slightly": -0.293, "somewhat": -0.2, "marginally": -0.25, "barely": -0.293,
}

// negations flip the valence of nearby sentiment words.
var negations = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true, "nor": true,
	"without": true, "hardly": true, "doesn't": true, "isn't": true,
	"wasn't": true, "won't": true, "don't": true, "didn't": true, "cannot": true, "can't": true,
}
