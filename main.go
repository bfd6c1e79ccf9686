// Package main is the entry point of the replaystat CLI.
package main

import (
	"github.com/huangsam/replaystat/cmd"
	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	iocache.CloseCaching()

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
