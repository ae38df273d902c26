package env

import "time"

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type CSVConfig struct {
	Spots       string
	Courses     string
	CourseSpots string
}

type KafkaConfig struct {
	Broker     string
	Topic      string
	GroupID    string
	ReplyTopic string
}

// Config is the process configuration read from the environment.
type Config struct {
	Source         string
	DatabaseURL    string
	Minio          MinioConfig
	Bucket         string
	DatasetName    string
	CSV            CSVConfig
	XLSXPath       string
	Geocoder       string
	GoogleMapsKey  string
	GeminiKey      string
	GeminiModel    string
	Kafka          KafkaConfig
	HTTPAddr       string
	RequestTimeout time.Duration
}

// Load reads the configuration. Missing values fall back to defaults.
func Load() Config {
	return Config{
		Source:      Get("CONCIERGE_SOURCE", "postgres"),
		DatabaseURL: Get("DATABASE_URL", ""),
		Minio: MinioConfig{
			Endpoint:  Get("MINIO_ENDPOINT", ""),
			AccessKey: Get("MINIO_ACCESS_KEY", ""),
			SecretKey: Get("MINIO_SECRET_KEY", ""),
			UseSSL:    getBool("MINIO_USE_SSL", false),
		},
		Bucket:      Get("DATASET_BUCKET", "concierge"),
		DatasetName: Get("DATASET_NAME", "fukuoka"),
		CSV: CSVConfig{
			Spots:       Get("CSV_SPOTS_URL", ""),
			Courses:     Get("CSV_COURSES_URL", ""),
			CourseSpots: Get("CSV_COURSE_SPOTS_URL", ""),
		},
		XLSXPath:      Get("XLSX_PATH", ""),
		Geocoder:      Get("GEOCODER", "nominatim"),
		GoogleMapsKey: Get("GOOGLE_MAPS_API_KEY", ""),
		GeminiKey:     Get("GEMINI_API_KEY", ""),
		GeminiModel:   Get("GEMINI_MODEL", ""),
		Kafka: KafkaConfig{
			Broker:     Get("KAFKA_BROKER", "localhost:9092"),
			Topic:      Get("KAFKA_TOPIC", "concierge-requests"),
			GroupID:    Get("KAFKA_GROUP_ID", "concierge"),
			ReplyTopic: Get("KAFKA_REPLY_TOPIC", "concierge-replies"),
		},
		HTTPAddr:       Get("HTTP_ADDR", ":8080"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 15*time.Second),
	}
}
