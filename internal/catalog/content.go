package catalog

var readAloudSentences = []string{
	"The sun rises in the east and sets in the west.",
	"Python is a powerful programming language used worldwide.",
	"Artificial intelligence is transforming the future of technology.",
	"Reading books expands knowledge and sharpens the mind.",
	"A balanced diet is essential for a healthy lifestyle.",
	"The quick brown fox jumps over the lazy dog.",
	"Water is the most essential resource for all living beings.",
	"Cloud computing allows data to be stored and accessed online.",
	"The earth revolves around the sun in an elliptical orbit.",
	"Machine learning enables computers to learn from data.",
	"Listening to music can reduce stress and improve mood.",
	"Teamwork is the key to achieving great success.",
	"Renewable energy sources are vital for a sustainable future.",
	"The internet has revolutionized communication and information sharing.",
	"Practice makes perfect, so never stop learning new things.",
}

var listenRepeatSentences = []string{
	"The sun rises in the east and sets in the west.",
	"Python is a powerful programming language used worldwide.",
	"Artificial intelligence is transforming the future of technology.",
	"Reading books expands knowledge and sharpens the mind.",
	"A balanced diet is essential for a healthy lifestyle.",
	"The quick brown fox jumps over the lazy dog.",
	"Water is the most essential resource for all living beings.",
	"Cloud computing allows data to be stored and accessed online.",
	"The earth revolves around the sun in an elliptical orbit.",
	"Machine learning enables computers to learn from data.",
	"Listening to music can reduce stress and improve mood.",
	"Teamwork is the key to achieving great success.",
	"Renewable energy sources are vital for a sustainable future.",
	"The internet has revolutionized communication and information sharing.",
}

var speakingTopics = []string{
	"The importance of renewable energy in today's world",
	"How technology is revolutionizing modern education",
	"The role of artificial intelligence in healthcare",
	"Your favorite hobby and why it brings you joy",
	"The impact of social media on modern society",
	"How to maintain a healthy lifestyle in busy times",
	"The importance of effective time management",
	"The benefits of reading books in the digital age",
	"Climate change and its global effects",
	"Your dream vacation destination and why",
}

// grammarQuestions covers tenses, prepositions, articles and adverbs.
var grammarQuestions = indexQuiz([]QuizItem{
	{Prompt: "I ___ (go) to the cinema yesterday.", Answer: "went", Category: "tenses_past_simple"},
	{Prompt: "She ___ (see) him at the park last week.", Answer: "saw", Category: "tenses_past_simple"},
	{Prompt: "They ___ (buy) a new house two years ago.", Answer: "bought", Category: "tenses_past_simple"},

	{Prompt: "Look! It ___ (rain) outside right now.", Answer: "is raining", Category: "tenses_present_continuous"},
	{Prompt: "We ___ (listen) to music at the moment.", Answer: "are listening", Category: "tenses_present_continuous"},

	{Prompt: "I ___ (sleep) when you called me.", Answer: "was sleeping", Category: "tenses_past_continuous"},
	{Prompt: "They ___ (play) football when the rain started.", Answer: "were playing", Category: "tenses_past_continuous"},

	{Prompt: "We have a meeting ___ Monday morning.", Answer: "on", Category: "prepositions_time"},
	{Prompt: "My birthday is ___ July.", Answer: "in", Category: "prepositions_time"},
	{Prompt: "The keys are ___ the table (surface).", Answer: "on", Category: "prepositions_place"},
	{Prompt: "I will meet you ___ the bus stop.", Answer: "at", Category: "prepositions_place"},

	{Prompt: "I saw ___ elephant at the zoo.", Answer: "an", Category: "articles"},
	{Prompt: "Can you pass me ___ salt, please? (Specific item)", Answer: "the", Category: "articles"},
	{Prompt: "He is ___ honest man.", Answer: "an", Category: "articles"},
	{Prompt: "She wants to buy ___ new car (general).", Answer: "a", Category: "articles"},

	{Prompt: "He runs very ___ (quick).", Answer: "quickly", Category: "adverbs"},
	{Prompt: "Please speak ___ (soft) in the library.", Answer: "softly", Category: "adverbs"},
	{Prompt: "She sings ___ (beautiful).", Answer: "beautifully", Category: "adverbs"},
	{Prompt: "They played ___ (happy) together.", Answer: "happily", Category: "adverbs"},

	{Prompt: "I ___ (read) that book already.", Answer: "have read", Category: "tenses_present_perfect"},
	{Prompt: "She ___ (live) here for ten years.", Answer: "has lived", Category: "tenses_present_perfect"},

	{Prompt: "He walked ___ the room (enter).", Answer: "into", Category: "prepositions_movement"},
	{Prompt: "The cat jumped ___ the wall.", Answer: "over", Category: "prepositions_movement"},
})

func indexQuiz(items []QuizItem) []QuizItem {
	for i := range items {
		items[i].Index = i
	}
	return items
}
