// Package main provides the spamguard command line.
//
// spamguard scores forum posts with the same rule pack and service the API uses.
//
// Usage:
//
//	spamguard check --title "..." --content "..."
//	spamguard batch posts.jsonl
//	spamguard rules
//
// See --help for all available options.
package main

func main() {
	Execute()
}
