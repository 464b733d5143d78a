// Package main provides the entry point for the SuperCrawl CLI.
//
// SuperCrawl is a client for the SuperCrawl website-auditing service. It
// registers domains as projects, starts crawls, and shows the SEO issues the
// backend found.
//
// Usage:
//
//	supercrawl create example.com
//	supercrawl projects
//	supercrawl issues <project-id>
//	supercrawl tui
//
// See --help for all available options.
package main

// main is the entry point for SuperCrawl.
func main() {
	Execute()
}
