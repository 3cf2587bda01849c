// Package main is the entry point for the lolmetrics CLI tool, which syncs
// the League of Legends item catalog, reconstructs item builds from match
// timelines, and computes per-role performance statistics.
package main

import "github.com/mkoval/go-lol-metrics/cmd"

func main() {
	cmd.Execute()
}
