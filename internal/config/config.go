package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	SiteURL     string `env:"SITE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL" envDefault:"storefront.db"`

	Admin       Admin       `envPrefix:"ADMIN_"`
	NowPayments NowPayments `envPrefix:"NOWPAYMENTS_"`
}

type Admin struct {
	Username     string `env:"USERNAME"`
	PasswordHash string `env:"PASSWORD_HASH"`
	// Secret signs the admin session token. The default only exists so the
	// app can boot in development.
	Secret string `env:"SECRET" envDefault:"dev_secret_key_change_in_production_minimum_32_chars"`
}

type NowPayments struct {
	BaseApiURL    string `env:"BASE_API_URL" envDefault:"https://api.nowpayments.io"`
	APIKey        string `env:"API_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET" envDefault:"test_secret"`
	// StaticLinks maps plan ids to pre-created invoice URLs, e.g.
	// "plan_3m:https://nowpayments.io/payment/?iid=123,plan_6m:...".
	// When set, checkout uses these links instead of the invoice API.
	StaticLinks StaticLinkTable `env:"STATIC_LINKS"`
}

// StaticLinkTable parses the plan→URL table itself: the URLs contain ":" and
// "=", so the generic key/value map parsing cannot split the items. Each
// comma-separated item splits on its first ":" only.
type StaticLinkTable map[string]string

func (t *StaticLinkTable) UnmarshalText(text []byte) error {
	links := StaticLinkTable{}
	for _, item := range strings.Split(string(text), ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		plan, url, ok := strings.Cut(item, ":")
		if !ok || plan == "" || url == "" {
			return fmt.Errorf("static link %q should be in plan:url format", item)
		}
		links[plan] = url
	}
	*t = links
	return nil
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

func (e Environment) IsProduction() bool {
	return e.Name == "production"
}

// WebhookSecretConfigured reports whether IPN signature verification should be
// enforced. The default placeholder secret does not count.
func (n NowPayments) WebhookSecretConfigured() bool {
	return n.WebhookSecret != "" && n.WebhookSecret != "test_secret"
}
