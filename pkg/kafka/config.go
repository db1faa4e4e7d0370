package kafka

// Config holds Kafka connection parameters.
type Config struct {
	Brokers []string

	// AllowAutoTopicCreation lets writers create missing topics on first
	// publish. Enabled for local development, off in production where topics
	// are provisioned ahead of time.
	AllowAutoTopicCreation bool
}
