// Command briefcast generates, reviews and publishes audio podcast briefs.
//
// Running it without arguments opens the terminal UI. The generate, list
// and mcp subcommands work headless against the same data directory.
package main
