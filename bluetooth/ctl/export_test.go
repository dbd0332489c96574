package ctl

// Sanitize and CutPrompt expose output cleaning for tests.
var (
	Sanitize  = sanitize
	CutPrompt = cutPrompt
)
