package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// LoadEnv loads environment variables from a .env file
func LoadEnv() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, using process environment")
	}
}

// GetEnv retrieves environment variables with a fallback
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

const (
	gatewaySandboxURL    = "https://api-preprod.phonepe.com/apis/pg-sandbox"
	gatewayProductionURL = "https://api.phonepe.com/apis/hermes"
)

// Payment holds the payment-gateway credentials. Merchant id and salt key
// are mandatory: without them prepaid orders cannot be signed, so startup
// must fail rather than degrade.
type Payment struct {
	MerchantID      string `envconfig:"PAYMENT_MERCHANT_ID"`
	SaltKey         string `envconfig:"PAYMENT_SALT_KEY"`
	SaltIndex       string `envconfig:"PAYMENT_SALT_INDEX" default:"1"`
	Production      bool   `envconfig:"PAYMENT_PRODUCTION" default:"false"`
	BaseURLOverride string `envconfig:"PAYMENT_BASE_URL"`
	CallbackBaseURL string `envconfig:"PAYMENT_CALLBACK_BASE_URL" default:"http://localhost:3000"`
}

func (p Payment) BaseURL() string {
	if p.BaseURLOverride != "" {
		return p.BaseURLOverride
	}
	if p.Production {
		return gatewayProductionURL
	}
	return gatewaySandboxURL
}

// LoadPayment reads the gateway configuration from the environment.
func LoadPayment() (Payment, error) {
	var p Payment
	if err := envconfig.Process("", &p); err != nil {
		return Payment{}, err
	}
	if p.MerchantID == "" || p.SaltKey == "" {
		return Payment{}, fmt.Errorf("payment gateway not configured: PAYMENT_MERCHANT_ID and PAYMENT_SALT_KEY are required")
	}
	return p, nil
}

// Admin holds the dashboard passcode hash and the secret used to sign
// admin session tokens.
type Admin struct {
	PasscodeHash string `envconfig:"ADMIN_PASSCODE_HASH"`
	JWTSecret    string `envconfig:"JWT_SECRET"`
}

func LoadAdmin() (Admin, error) {
	var a Admin
	if err := envconfig.Process("", &a); err != nil {
		return Admin{}, err
	}
	if a.PasscodeHash == "" || a.JWTSecret == "" {
		return Admin{}, fmt.Errorf("admin gate not configured: ADMIN_PASSCODE_HASH and JWT_SECRET are required")
	}
	return a, nil
}

// SMTP is optional; when Host is empty outgoing mail is disabled.
type SMTP struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM"`
}

func LoadSMTP() (SMTP, error) {
	var s SMTP
	if err := envconfig.Process("", &s); err != nil {
		return SMTP{}, err
	}
	return s, nil
}
