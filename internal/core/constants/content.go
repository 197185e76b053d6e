package constants

const (
	ContentTypeJSON = "application/json"
	AcceptHeader    = "Accept"
	UserAgentHeader = "User-Agent"
)
