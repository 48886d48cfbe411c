package domain

type ErrorKind string

const (
	ErrorKindNone              ErrorKind = ""
	ErrorKindInputTooShort     ErrorKind = "input_too_short"
	ErrorKindOutputTooShort    ErrorKind = "output_too_short"
	ErrorKindProviderError     ErrorKind = "provider_error"
	ErrorKindUnsupportedAction ErrorKind = "unsupported_action"
)

const errorPrefix = "Error: "

// Result is either a success carrying Text or a failure carrying Kind and Message.
// Config holds the normalized values the request was built from.
type Result struct {
	Kind    ErrorKind
	Text    string
	Message string
	Config  RequestConfig
}

func Success(text string, cfg RequestConfig) Result {
	return Result{Text: text, Config: cfg}
}

func Failure(kind ErrorKind, message string, cfg RequestConfig) Result {
	return Result{Kind: kind, Message: message, Config: cfg}
}

func (r Result) OK() bool {
	return r.Kind == ErrorKindNone
}

// Display renders the result for a text surface; failures are prefixed with "Error: ".
func (r Result) Display() string {
	if r.OK() {
		return r.Text
	}
	return errorPrefix + r.Message
}
