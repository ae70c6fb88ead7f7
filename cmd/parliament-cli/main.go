package main

import (
	"parliament-backend/cmd/parliament-cli/commands"
	"parliament-backend/lib/serviceutil"
	"parliament-backend/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "parliament-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(ctx)
}
