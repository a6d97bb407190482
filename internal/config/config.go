package config

const (
	DefaultReportPort = 6143
	DefaultTimeZone   = "America/Argentina/Buenos_Aires"

	// Scheduled directory run: when the well-known input files show up in
	// the watch folder, the report is generated without a request.
	DefaultRunSchedule = "0 7 * * *"
	DefaultInputDir    = "./input"
	DefaultOutputDir   = "./output"
)
