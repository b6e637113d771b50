package analyze

// Valence lexicon for social-media text. Values follow the usual -4..4
// convention: sign is polarity, magnitude is intensity. Words absent from
// the map score zero.
var lexicon = map[string]float64{
	// strongly negative
	"abysmal": -3.1, "agonizing": -3.2, "atrocious": -3.0, "awful": -2.9,
	"catastrophe": -3.0, "catastrophic": -3.2, "disaster": -3.1, "disastrous": -3.2,
	"dreadful": -2.8, "horrible": -2.9, "horrendous": -3.0, "horrific": -3.1,
	"nightmare": -2.8, "nightmarish": -3.0, "terrible": -2.7, "unbearable": -2.9,
	"unusable": -2.6, "worst": -3.1, "hate": -2.7, "hated": -2.7, "hates": -2.7,
	"hating": -2.7, "furious": -2.8, "infuriating": -3.0, "rage": -2.6,

	// moderately negative
	"angry": -2.3, "annoyed": -1.9, "annoying": -2.0, "awkward": -1.2,
	"bad": -2.5, "broke": -1.9, "broken": -2.2, "buggy": -2.1, "bugs": -1.6,
	"bug": -1.5, "chaos": -2.6, "chaotic": -2.4, "clunky": -1.8, "complain": -1.6,
	"complaint": -1.6, "complaints": -1.6, "confused": -1.6, "confusing": -1.8,
	"crash": -2.2, "crashed": -2.2, "crashes": -2.2, "crashing": -2.3,
	"cumbersome": -1.7, "damn": -1.6, "desperate": -2.1, "difficult": -1.7,
	"disappointed": -2.1, "disappointing": -2.2, "dread": -2.3, "error": -1.7,
	"errors": -1.7, "exhausted": -2.0, "exhausting": -2.1, "expensive": -1.4,
	"fail": -2.2, "failed": -2.3, "failing": -2.3, "fails": -2.2, "failure": -2.4,
	"fear": -2.0, "frustrated": -2.2, "frustrating": -2.4, "frustration": -2.3,
	"glitch": -1.7, "glitchy": -1.9, "hard": -1.3, "hassle": -1.9, "headache": -2.0,
	"hell": -2.4, "hopeless": -2.5, "hurt": -1.9, "hurts": -1.9, "impossible": -2.0,
	"inefficient": -1.6, "issue": -1.3, "issues": -1.4, "lose": -1.7, "losing": -1.8,
	"lost": -1.6, "mess": -2.0, "messy": -1.8, "miserable": -2.6, "miss": -1.1,
	"missed": -1.3, "missing": -1.3, "mistake": -1.7, "mistakes": -1.8,
	"overwhelmed": -2.1, "overwhelming": -1.9, "pain": -2.1, "painful": -2.3,
	"pains": -2.1, "panic": -2.2, "poor": -1.9, "problem": -1.6, "problems": -1.7,
	"refund": -0.9, "regret": -2.0, "sad": -2.1, "scam": -2.6, "scrambling": -1.5,
	"slow": -1.3, "slower": -1.4, "slowest": -1.8, "sick": -1.8, "struggle": -2.0,
	"struggled": -2.0, "struggles": -2.0, "struggling": -2.1, "stuck": -1.6,
	"stress": -2.0, "stressed": -2.1, "stressful": -2.2, "stupid": -2.0,
	"suck": -2.1, "sucks": -2.2, "tedious": -1.8, "terribly": -2.4, "tired": -1.5,
	"ugly": -1.9, "unhappy": -2.1, "unreliable": -2.0, "upset": -1.9,
	"useless": -2.3, "waste": -1.9, "wasted": -2.0, "wasting": -2.0,
	"worse": -2.1, "worried": -1.8, "worry": -1.7, "wrong": -1.6,

	// mildly negative
	"boring": -1.3, "cheap": -0.6, "complicated": -1.2, "delay": -1.1,
	"delayed": -1.3, "delays": -1.2, "doubt": -1.0, "dull": -1.2, "lack": -1.1,
	"lacking": -1.3, "limited": -0.8, "manual": -0.4, "meh": -0.9, "noisy": -1.0,
	"outdated": -1.2, "pricey": -1.0, "risky": -1.1, "tricky": -0.7,

	// positive
	"amazing": 2.8, "awesome": 3.1, "beautiful": 2.9, "best": 3.2, "better": 1.9,
	"breeze": 1.8, "brilliant": 2.8, "clean": 1.6, "convenient": 1.9, "delight": 2.7,
	"delighted": 2.9, "easy": 1.9, "easier": 1.8, "effortless": 2.2, "enjoy": 2.2,
	"enjoyed": 2.3, "excellent": 3.0, "excited": 2.4, "fantastic": 3.0, "fast": 1.4,
	"favorite": 2.3, "fine": 0.8, "flawless": 2.9, "free": 1.2, "fun": 2.3,
	"glad": 2.0, "good": 1.9, "great": 3.1, "happy": 2.7, "help": 1.7,
	"helped": 1.8, "helpful": 2.1, "helps": 1.7, "impressed": 2.3, "impressive": 2.4,
	"intuitive": 1.8, "love": 3.2, "loved": 2.9, "lovely": 2.8, "loves": 2.9,
	"nice": 1.8, "painless": 1.9, "perfect": 3.0, "perfectly": 3.1, "pleasant": 2.2,
	"pleased": 2.1, "powerful": 1.7, "recommend": 1.9, "recommended": 1.9,
	"reliable": 2.0, "reliably": 2.0, "rescue": 1.6, "save": 1.5, "saved": 1.7,
	"saves": 1.5, "seamless": 2.3, "simple": 1.6, "smooth": 1.9, "smoothly": 2.0,
	"solid": 1.6, "solved": 1.9, "stable": 1.4, "succeeded": 2.1, "success": 2.5,
	"successful": 2.4, "super": 2.5, "thanks": 1.9, "thrilled": 3.0, "useful": 1.9,
	"win": 2.4, "winner": 2.6, "won": 2.2, "wonderful": 2.9, "works": 1.1,
	"worked": 1.2, "wow": 2.6, "yay": 2.4,
}

// negations flip and dampen the valence of a word they precede.
var negations = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {}, "nobody": {}, "nothing": {},
	"neither": {}, "nor": {}, "nowhere": {}, "cannot": {}, "cant": {},
	"can't": {}, "wont": {}, "won't": {}, "isnt": {}, "isn't": {},
	"aint": {}, "ain't": {}, "arent": {}, "aren't": {}, "dont": {},
	"don't": {}, "didnt": {}, "didn't": {}, "doesnt": {}, "doesn't": {},
	"wasnt": {}, "wasn't": {}, "werent": {}, "weren't": {}, "couldnt": {},
	"couldn't": {}, "shouldnt": {}, "shouldn't": {}, "wouldnt": {},
	"wouldn't": {}, "hardly": {}, "rarely": {}, "barely": {}, "without": {},
}

// boosters scale the valence of a nearby scored word up or down.
// Positive increments intensify, negative increments dampen.
var boosters = map[string]float64{
	"absolutely": boosterIncrement, "amazingly": boosterIncrement,
	"completely": boosterIncrement, "considerably": boosterIncrement,
	"decidedly": boosterIncrement, "deeply": boosterIncrement,
	"enormously": boosterIncrement, "entirely": boosterIncrement,
	"especially": boosterIncrement, "exceptionally": boosterIncrement,
	"extremely": boosterIncrement, "hugely": boosterIncrement,
	"incredibly": boosterIncrement, "insanely": boosterIncrement,
	"majorly": boosterIncrement, "particularly": boosterIncrement,
	"really": boosterIncrement, "remarkably": boosterIncrement,
	"ridiculously": boosterIncrement, "so": boosterIncrement,
	"totally": boosterIncrement, "truly": boosterIncrement,
	"unbelievably": boosterIncrement, "utterly": boosterIncrement,
	"very": boosterIncrement,

	"almost": -boosterIncrement, "kinda": -boosterIncrement,
	"less": -boosterIncrement, "little": -boosterIncrement,
	"marginally": -boosterIncrement, "occasionally": -boosterIncrement,
	"partly": -boosterIncrement, "slightly": -boosterIncrement,
	"somewhat": -boosterIncrement, "sorta": -boosterIncrement,
}
