package main

import (
	"wardreport/cmd/wardreport/commands"
	"wardreport/lib/serviceutil"
	"wardreport/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "wardreport")
	telemetry.InitSlog(true)
	commands.ExecuteContext(ctx)
}
