package config

type (
	InternalConfig struct {
		App App
		JWT JWT
		Lab Lab
	}

	App struct {
		Env            string
		Port           string
		Version        string
		Timezone       string
		EndpointPrefix string
		// MaxRequests per MaxTimeRequestsPerSeconds seconds, per IP.
		MaxRequests               int
		MaxTimeRequestsPerSeconds int
		ShutdownTimeout           int
	}

	JWT struct {
		Secret string
	}

	Lab struct {
		// BarcodePrefix is prepended to generated barcodes when the
		// ordering collaborator does not supply one.
		BarcodePrefix string
		// DailyCapacityMaximum is the informational daily throughput
		// gauge ceiling; completions are never blocked by it.
		DailyCapacityMaximum int
		// AlertQueue is the RabbitMQ queue consumed by the external
		// notification service.
		AlertQueue string
		// AlertsPerSecond throttles critical alert publishing.
		AlertsPerSecond int
		// DashboardCacheTTLInSeconds bounds staleness of the cached
		// dashboard aggregate.
		DashboardCacheTTLInSeconds int
		// RecentCompletionsLimit caps the recent completions list on
		// the dashboard.
		RecentCompletionsLimit int
	}
)
