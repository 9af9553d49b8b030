package provider

import "fmt"

// Sampling temperatures per call type.
const (
	temperaturePrecise  float32 = 0.3
	temperatureCreative float32 = 0.7
)

const phoneticsSystemPrompt = "You are a linguistic expert specializing in English phonetics."

const sentencesSystemPrompt = "You are a language expert specializing in creating example sentences."

const wordInfoSystemPrompt = `You are a dictionary assistant. For the English word or phrase the user gives you, reply with a single JSON object and nothing else: no markdown fences, no prefix, no explanation.

The object must have exactly this shape:
{
  "uk_phonetic": "british IPA",
  "us_phonetic": "american IPA",
  "meanings": [
    {"pos": "n.", "definition": "all noun senses in concise Chinese, separated by semicolons"},
    {"pos": "v.", "definition": "all verb senses in concise Chinese, separated by semicolons"}
  ]
}

Rules:
1. Give phonetic symbols only. Do not wrap them in slashes or square brackets (write ˈneɪm, not /ˈneɪm/ or [ˈneɪm]).
2. Use abbreviated parts of speech: n., v., adj., adv., prep., conj., interj.
3. Merge every sense of the same part of speech into one object, separating senses with semicolons.
4. Order the meanings by part of speech: n., v., adj., adv., prep., conj., interj.
5. If a phonetic transcription is unknown, use an empty string.
6. All keys use double quotes and the JSON must be complete and valid.`

func phoneticsUserPrompt(word string) string {
	return fmt.Sprintf(`Give the International Phonetic Alphabet (IPA) pronunciations of the English word "%s".
Reply with a JSON object of this shape:
{
    "us_ipa": "american ipa",
    "uk_ipa": "british ipa"
}
Do not add any other text.`, word)
}

func exampleSentencesUserPrompt(word string) string {
	return fmt.Sprintf(`Write two example sentences that use "%s": one simple, one more complex.
Reply with a JSON array of exactly two objects of this shape:
[
    {"english": "English sentence 1", "chinese": "Chinese translation 1"},
    {"english": "English sentence 2", "chinese": "Chinese translation 2"}
]
Do not add any other text.`, word)
}

func wordInfoUserPrompt(word string) string {
	return fmt.Sprintf("Give the details of the English word '%s' in the JSON format described above. Merge senses of the same part of speech, separated by semicolons.", word)
}

// message is a provider-neutral chat message.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// request is one prompt exchange: system and user messages plus temperature.
type request struct {
	op          string
	messages    []message
	temperature float32
}

func phoneticsRequest(word string) request {
	return request{
		op: "get_phonetics",
		messages: []message{
			{Role: "system", Content: phoneticsSystemPrompt},
			{Role: "user", Content: phoneticsUserPrompt(word)},
		},
		temperature: temperaturePrecise,
	}
}

func exampleSentencesRequest(word string) request {
	return request{
		op: "get_example_sentences",
		messages: []message{
			{Role: "system", Content: sentencesSystemPrompt},
			{Role: "user", Content: exampleSentencesUserPrompt(word)},
		},
		temperature: temperatureCreative,
	}
}

func wordInfoRequest(word string) request {
	return request{
		op: "get_word_info",
		messages: []message{
			{Role: "system", Content: wordInfoSystemPrompt},
			{Role: "user", Content: wordInfoUserPrompt(word)},
		},
		temperature: temperaturePrecise,
	}
}
