package main

import (
	"os"

	"github.com/emRival/rekap-absensi/internal/cli"
	"github.com/joho/godotenv"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// REKAP_HOME and REKAP_ADDR may come from a local .env file.
	_ = godotenv.Load()

	cli.SetVersionInfo(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
