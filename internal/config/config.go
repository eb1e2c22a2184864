package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AdminAccountConfig is one pre-created admin account. Either a bcrypt
// password_hash or a plain password (hashed at load, development only)
// must be present.
type AdminAccountConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
	Password     string `yaml:"password"`
	FullName     string `yaml:"full_name"`
	Email        string `yaml:"email"`
	Role         string `yaml:"role"`
}

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	College struct {
		Name string `yaml:"name" env:"COLLEGE_NAME"`
	} `yaml:"college"`

	Storage struct {
		KnowledgeBasePath string `yaml:"knowledge_base_path" env:"KNOWLEDGE_BASE_PATH"`
		AdminDataPath     string `yaml:"admin_data_path" env:"ADMIN_DATA_PATH"`
	} `yaml:"storage"`

	Chat struct {
		MinMessageLength         int      `yaml:"min_message_length"`
		MaxMessageLength         int      `yaml:"max_message_length" env:"CHAT_MAX_MESSAGE_LENGTH"`
		SimilarityThreshold      float64  `yaml:"similarity_threshold" env:"CHAT_SIMILARITY_THRESHOLD"`
		BlockedWords             []string `yaml:"blocked_words"`
		PersonalQuestionKeywords []string `yaml:"personal_question_keywords"`
		OffTopicKeywords         []string `yaml:"off_topic_keywords"`
		CollegeKeywords          []string `yaml:"college_keywords"`
	} `yaml:"chat"`

	Messages struct {
		Empty            string `yaml:"empty"`
		TooShort         string `yaml:"too_short"`
		TooLong          string `yaml:"too_long"`
		NoText           string `yaml:"no_text"`
		Spam             string `yaml:"spam"`
		BlockedContent   string `yaml:"blocked_content"`
		PersonalQuestion string `yaml:"personal_question"`
		OffTopic         string `yaml:"off_topic"`
		Privacy          string `yaml:"privacy"`
		Fallback         string `yaml:"fallback"`
		HighDemand       string `yaml:"high_demand"`
	} `yaml:"messages"`

	LLM struct {
		APIKey    string `yaml:"api_key" env:"LLM_API_KEY"`
		BaseURL   string `yaml:"base_url" env:"LLM_BASE_URL"`
		Model     string `yaml:"model" env:"LLM_MODEL"`
		MaxTokens int    `yaml:"max_tokens" env:"LLM_MAX_TOKENS"`
		Timeout   string `yaml:"timeout" env:"LLM_TIMEOUT"`
	} `yaml:"llm"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	SMTP struct {
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
	} `yaml:"smtp"`

	Admin struct {
		Accounts []AdminAccountConfig `yaml:"accounts"`
	} `yaml:"admin"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.College.Name = "ABC College of Engineering"

	// Storage defaults
	config.Storage.KnowledgeBasePath = "data/knowledge_base.json"
	config.Storage.AdminDataPath = "data/admin_data.json"

	// Chat defaults
	config.Chat.MinMessageLength = 2
	config.Chat.MaxMessageLength = 500
	config.Chat.SimilarityThreshold = 0.6
	config.Chat.BlockedWords = []string{
		"hack", "cheat", "exploit", "crack", "breach",
		"inappropriate", "offensive", "abuse", "harass",
		"stupid", "idiot", "dumb",
		"kill", "attack", "threat", "bomb",
		"fake", "forge", "bribe",
	}
	config.Chat.PersonalQuestionKeywords = []string{
		"girlfriend", "boyfriend", "wife", "husband", "married",
		"salary", "income", "how much earn", "personal life",
		"home address", "where does", "live", "phone number of",
		"age of", "how old is", "private", "secret",
	}
	config.Chat.OffTopicKeywords = []string{
		"politics", "election", "vote", "government", "minister", "party",
		"religion", "god", "prayer", "temple", "church", "mosque",
		"dating", "movie", "cricket", "football", "game score",
		"gambling", "betting", "cryptocurrency", "bitcoin", "stock market",
		"personal advice", "relationship advice", "life advice",
		"illegal", "drugs", "alcohol",
	}
	config.Chat.CollegeKeywords = []string{
		"admission", "course", "class", "exam", "result", "grade",
		"assignment", "project", "semester", "syllabus", "subject",
		"lecture", "professor", "teacher", "faculty", "department",
		"fee", "scholarship", "certificate", "document", "form",
		"registration", "enrollment", "attendance", "timetable",
		"hostel", "library", "lab", "canteen", "bus", "transport",
		"wifi", "sports", "event", "club", "fest",
		"placement", "internship", "career", "interview",
		"college", "university", "campus", "student", "study",
	}

	// Message defaults
	config.Messages.Empty = "Please enter a message."
	config.Messages.TooShort = "Your message is too short. Please provide more details."
	config.Messages.TooLong = "Your message is too long. Please keep it under 500 characters."
	config.Messages.NoText = "Please enter a valid message with some text."
	config.Messages.Spam = "Please send a proper message without excessive repetition."
	config.Messages.BlockedContent = "I cannot respond to this type of query. Please keep your questions appropriate and college-related."
	config.Messages.PersonalQuestion = "I cannot provide personal information about individuals. For faculty contact details, please visit the college website or contact the admin office."
	config.Messages.OffTopic = "I can only help with college-related queries. Please ask questions about admissions, courses, fees, timings, faculty, or other college matters."
	config.Messages.Privacy = "For your privacy and security, please don't share personal information like phone numbers, email addresses, or ID numbers in this chat."
	config.Messages.Fallback = "I'm sorry, I couldn't find an answer to your question. Please contact the college admin office for further assistance."
	config.Messages.HighDemand = "I'm currently experiencing high demand. Please try again in a moment or contact the admin office."

	// LLM defaults (Groq's OpenAI-compatible endpoint)
	config.LLM.BaseURL = "https://api.groq.com/openai/v1"
	config.LLM.Model = "llama-3.1-8b-instant"
	config.LLM.MaxTokens = 150
	config.LLM.Timeout = "10s"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "helpdesk.app"

	// SMTP defaults
	config.SMTP.Port = 587
	config.SMTP.FromName = "College Helpdesk"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.LLM.Timeout); err != nil {
		return fmt.Errorf("invalid LLM timeout format: %w", err)
	}

	if config.Chat.MaxMessageLength <= 0 {
		return fmt.Errorf("chat max message length must be positive")
	}

	if config.Chat.SimilarityThreshold <= 0 || config.Chat.SimilarityThreshold > 1 {
		return fmt.Errorf("chat similarity threshold must be in (0, 1]")
	}

	for i, account := range config.Admin.Accounts {
		if account.Username == "" {
			return fmt.Errorf("admin account %d: username is required", i)
		}
		if account.PasswordHash == "" && account.Password == "" {
			return fmt.Errorf("admin account %q: password or password_hash is required", account.Username)
		}
	}

	return nil
}

// LLMTimeout returns the parsed LLM request timeout.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// AccessTokenExp returns the parsed JWT access token lifetime.
func (c *Config) AccessTokenExp() time.Duration {
	d, err := time.ParseDuration(c.JWT.AccessTokenExpiration)
	if err != nil {
		return time.Hour
	}
	return d
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
