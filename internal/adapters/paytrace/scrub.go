package paytrace

import "regexp"

const filtered = "[FILTERED]"

// A JSON string value runs to the first unescaped quote. Inside a quoted wire log line
// the whole payload is escaped once more, so the closing quote is \" and an escape in
// the value shows up as \\ followed by the escaped character.
const (
	jsonValue        = `(?:[^"\\]|\\.)+`
	escapedJSONValue = `(?:[^"\\]|\\\\(?:\\.|[^\\])|\\[^"\\])+`
)

// Each pattern captures the field prefix in group 1 and the secret after it.
var scrubPatterns = concatPatterns(
	[]*regexp.Regexp{
		regexp.MustCompile(`(Authorization: Bearer )[^\s"\\]+`),
		regexp.MustCompile(`(\\?"number\\?":\\?")\d+`),
		regexp.MustCompile(`(\\?"csc\\?":\\?")\d+`),
	},
	jsonStringField("access_token"),
	jsonStringField("username"),
	jsonStringField("password"),
	jsonStringField("integrator_id"),
	// OAuth token request form body
	[]*regexp.Regexp{
		regexp.MustCompile(`([&"]username=)[^&"\\\s]+`),
		regexp.MustCompile(`([&"]password=)[^&"\\\s]+`),
	},
)

// jsonStringField matches the string value of name in both raw and escaped JSON
func jsonStringField(name string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(name)
	return []*regexp.Regexp{
		regexp.MustCompile(`("` + quoted + `":\s*")` + jsonValue),
		regexp.MustCompile(`(\\"` + quoted + `\\":\s*\\")` + escapedJSONValue),
	}
}

func concatPatterns(groups ...[]*regexp.Regexp) []*regexp.Regexp {
	var all []*regexp.Regexp
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

// Scrub replaces bearer tokens, card numbers, CSCs, and account credentials in a wire
// transcript with [FILTERED]. Every other byte is left as is, and scrubbing a scrubbed
// transcript returns it unchanged.
func Scrub(transcript string) string {
	for _, re := range scrubPatterns {
		transcript = re.ReplaceAllString(transcript, "${1}"+filtered)
	}
	return transcript
}
