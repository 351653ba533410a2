package common

// UnknownStr is rendered for enum values without a name.
const UnknownStr = "unknown"
